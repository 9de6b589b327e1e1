package tennis

import (
	"errors"

	"github.com/ezBadminton/gotennis/internal"
)

var (
	ErrGamesZero = errors.New("games per set are zero or less")
	ErrSetsZero  = errors.New("winning sets are zero or less")

	ErrUndetermined = errors.New("the winner is undeterminable from the score")

	ErrEmpty           = errors.New("empty score")
	ErrUndeterminedSet = errors.New("a set has equal games")
	ErrUnequalSets     = errors.New("opponents have unequal number of sets")
	ErrTooManySets     = errors.New("too many sets")
	ErrTooFewSets      = errors.New("too few sets")
	ErrNegativeGames   = errors.New("negative games")
	ErrTooManyGames    = errors.New("games exceed the possible set score")
	ErrTooFewGames     = errors.New("set winner games are less than the games per set")
	ErrInvalidMargin   = errors.New("the winning game margin is invalid")
	ErrUnneededSets    = errors.New("score contains unneeded extra sets")
	ErrEqualSetWins    = errors.New("both opponents won an equal number of sets")
)

type scoreSettings struct {
	GamesPerSet, WinningSets int
	// Sets that reach GamesPerSet all are decided by a tiebreak.
	// Without it the set goes on until one side leads by 2.
	Tiebreak bool
}

func NewScoreSettings(gamesPerSet, winningSets int, tiebreak bool) (scoreSettings, error) {
	scoreSettings := scoreSettings{gamesPerSet, winningSets, tiebreak}

	if gamesPerSet <= 0 {
		return scoreSettings, ErrGamesZero
	}
	if winningSets <= 0 {
		return scoreSettings, ErrSetsZero
	}

	return scoreSettings, nil
}

// The score settings of a tour match with the given number of
// sets to win
func TourSettings(winningSets int) (scoreSettings, error) {
	return NewScoreSettings(6, winningSets, true)
}

type score struct {
	a, b []int
}

func (s *score) Points1() []int {
	return s.a
}

func (s *score) Points2() []int {
	return s.b
}

func (s *score) GetWinner() (int, error) {
	setWins := 0
	for i := range len(s.a) {
		if s.a[i] > s.b[i] {
			setWins += 1
		}
		if s.b[i] > s.a[i] {
			setWins -= 1
		}
	}

	if setWins > 0 {
		return 0, nil
	}
	if setWins < 0 {
		return 1, nil
	}

	return -1, ErrUndetermined
}

func (s *score) Invert() internal.Score {
	score := &score{
		a: s.b,
		b: s.a,
	}
	return score
}

// Validates the games per set of both opponents.
//
// With the tour settings every set has to be one of 6-0 to 6-4,
// 7-5 or 7-6 and the match has to end as soon as one side won
// the winning sets.
func NewScore(a, b []int, settings scoreSettings) (*score, error) {
	switch {
	case len(a) == 0 || len(b) == 0:
		return nil, ErrEmpty
	case len(a) != len(b):
		return nil, ErrUnequalSets
	case len(a) < settings.WinningSets:
		return nil, ErrTooFewSets
	case len(a) >= 2*settings.WinningSets:
		return nil, ErrTooManySets
	}

	setWinsA, setWinsB := 0, 0
	for i := range len(a) {
		if setWinsA == settings.WinningSets || setWinsB == settings.WinningSets {
			return nil, ErrUnneededSets
		}
		if err := validateSet(a[i], b[i], settings); err != nil {
			return nil, err
		}

		if a[i] > b[i] {
			setWinsA += 1
		} else {
			setWinsB += 1
		}
	}

	if setWinsA == setWinsB {
		return nil, ErrEqualSetWins
	}

	return &score{a, b}, nil
}

func validateSet(a, b int, settings scoreSettings) error {
	w := max(a, b)
	l := min(a, b)
	games := settings.GamesPerSet

	switch {
	case w == l:
		return ErrUndeterminedSet
	case l < 0:
		return ErrNegativeGames
	case w < games:
		return ErrTooFewGames
	case w == games && w-l < 2:
		return ErrInvalidMargin
	case w == games:
		return nil
	case settings.Tiebreak && w > games+1:
		return ErrTooManyGames
	case settings.Tiebreak && l < games-1:
		return ErrInvalidMargin
	case settings.Tiebreak:
		return nil
	case w-l != 2:
		return ErrInvalidMargin
	}
	return nil
}

// Returns the games per set of a played match in the order of
// its slots. Walkovers have no score.
func MatchScore(m *internal.Match) (*score, bool) {
	if m.Score == nil {
		return nil, false
	}
	return &score{a: m.Score.Points1(), b: m.Score.Points2()}, true
}
