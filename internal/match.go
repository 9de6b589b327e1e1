package internal

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	ErrMatchDecided = errors.New("match is already decided")
	ErrUndetermined = errors.New("the winner is undeterminable from the score")
)

// Why a match was decided without being played
type WalkoverCause int

const (
	NoWalkover WalkoverCause = iota
	// One or both slots are empty
	WalkoverAbsent
	// A starting player is injured
	WalkoverInjured
)

func (c WalkoverCause) String() string {
	switch c {
	case NoWalkover:
		return "none"
	case WalkoverAbsent:
		return "absent"
	case WalkoverInjured:
		return "injured"
	}
	return fmt.Sprintf("WalkoverCause(%d)", int(c))
}

// A match with two slots for the opponents.
//
// It also has information about the result
// of the match once it is simulated.
type Match struct {
	// The first opponent slot
	Slot1 *Slot
	// The second opponent slot
	Slot2 *Slot

	// An iterator that goes over the two slots
	Slots iter.Seq[*Slot]

	// Sets needed to win (2 for best of 3, 3 for best of 5)
	SetTarget int

	// The sets in the order they were played.
	// Empty for walkovers.
	Sets []*Set

	// Games per set of the two slots or
	// nil when the match was not played
	Score Score

	Winner *Player
	Loser  *Player

	Walkover WalkoverCause
	// Players who could not start due to injury
	WithdrawnPlayers []*Player

	decided bool

	// Id for graph node hashing
	id int
}

func NewMatch(slot1, slot2 *Slot, setTarget int, ids *idSequence) *Match {
	iterator := func(yield func(s *Slot) bool) {
		if !yield(slot1) {
			return
		}
		yield(slot2)
	}

	match := &Match{
		Slot1:     slot1,
		Slot2:     slot2,
		Slots:     iterator,
		SetTarget: setTarget,
		id:        ids.Next(),
	}
	return match
}

func (m *Match) Id() int {
	return m.id
}

// Returns true once the match has a result, which includes
// walkovers without a winner
func (m *Match) Decided() bool {
	return m.decided
}

func (m *Match) IsWalkover() bool {
	return m.Walkover != NoWalkover
}

// Returns the sets won by the given player
func (m *Match) SetsWon(player *Player) int {
	won := 0
	for _, s := range m.Sets {
		if s.Winner == player {
			won += 1
		}
	}
	return won
}

// Decides the match.
//
// An empty slot or an injured starting player gives the
// opponent a walkover without any set being played. When
// neither side can play the match ends without a winner. An
// injured player facing an empty slot withdraws as well.
// Otherwise sets are played until one player reaches the set
// target. The winner gains form and the loser loses it.
func (m *Match) Simulate(e *Engine) error {
	if m.decided {
		return ErrMatchDecided
	}

	p1 := m.Slot1.Player
	p2 := m.Slot2.Player

	switch {
	case p1 == nil && p2 == nil:
		m.walkover(nil, nil, WalkoverAbsent)
		return nil
	case p1 == nil || p2 == nil:
		present := p1
		if present == nil {
			present = p2
		}
		if present.Injured {
			m.WithdrawnPlayers = append(m.WithdrawnPlayers, present)
			m.walkover(nil, nil, WalkoverInjured)
			return nil
		}
		m.walkover(present, nil, WalkoverAbsent)
		return nil
	}

	// Coin toss for the first server
	server, returner := p1, p2
	if e.coinFlip() {
		server, returner = p2, p1
	}

	switch {
	case server.Injured && returner.Injured:
		m.WithdrawnPlayers = append(m.WithdrawnPlayers, server, returner)
		m.walkover(nil, nil, WalkoverInjured)
		return nil
	case server.Injured:
		m.WithdrawnPlayers = append(m.WithdrawnPlayers, server)
		m.walkover(returner, server, WalkoverInjured)
		return nil
	case returner.Injured:
		m.WithdrawnPlayers = append(m.WithdrawnPlayers, returner)
		m.walkover(server, returner, WalkoverInjured)
		return nil
	}

	setsWon := map[*Player]int{p1: 0, p2: 0}
	for setsWon[p1] < m.SetTarget && setsWon[p2] < m.SetTarget {
		set := NewSet(server, returner)
		next, nextReturner, err := set.Simulate(e)
		if err != nil {
			return err
		}
		m.Sets = append(m.Sets, set)
		setsWon[set.Winner] += 1
		server, returner = next, nextReturner
	}

	if setsWon[p1] == m.SetTarget {
		m.Winner, m.Loser = p1, p2
	} else {
		m.Winner, m.Loser = p2, p1
	}

	m.Score = newMatchScore(m.Sets, p1, p2)
	m.decided = true

	m.Winner.Form += e.Rules.FormStep
	m.Loser.Form = max(e.Rules.MinForm, m.Loser.Form-e.Rules.FormStep)

	return nil
}

func (m *Match) walkover(winner, loser *Player, cause WalkoverCause) {
	m.Winner = winner
	m.Loser = loser
	m.Walkover = cause
	m.decided = true
}

func (m *Match) String() string {
	var sb strings.Builder
	for s := range m.Slots {
		if s != m.Slot1 {
			sb.WriteString(" vs. ")
		}
		switch {
		case s.Player != nil:
			sb.WriteString(s.Player.Name)
		case s.IsBye():
			sb.WriteString("[Bye]")
		default:
			sb.WriteString("[Empty]")
		}
	}

	if m.Score != nil {
		p1, p2 := m.Score.Points1(), m.Score.Points2()
		sb.WriteRune('\t')
		for i := range len(p1) {
			setString := fmt.Sprintf("%v-%v ", p1[i], p2[i])
			sb.WriteString(setString)
		}
	} else if m.IsWalkover() {
		sb.WriteString("\tw/o (")
		sb.WriteString(m.Walkover.String())
		sb.WriteRune(')')
	}

	return sb.String()
}

// The result of a match.
//
// The scores are slices with one entry per set
type Score interface {
	// Games of first opponent
	Points1() []int

	// Games of second opponent
	Points2() []int

	// Returns either 0 or 1 whether the
	// first opponent won or the second.
	// Errors when no winner is determined.
	GetWinner() (int, error)

	// Returns a new Score that has Points1
	// and Points2 flipped
	Invert() Score
}

type matchScore struct {
	a, b []int
}

func newMatchScore(sets []*Set, player1, player2 *Player) *matchScore {
	score := &matchScore{
		a: make([]int, 0, len(sets)),
		b: make([]int, 0, len(sets)),
	}
	for _, s := range sets {
		score.a = append(score.a, s.GamesOf(player1))
		score.b = append(score.b, s.GamesOf(player2))
	}
	return score
}

func (s *matchScore) Points1() []int {
	return s.a
}

func (s *matchScore) Points2() []int {
	return s.b
}

func (s *matchScore) GetWinner() (int, error) {
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

func (s *matchScore) Invert() Score {
	return &matchScore{a: s.b, b: s.a}
}

// A Round is a list of matches that are played in
// parallel during a tournament.
// The matches of a round depend on the completion
// of all previous rounds.
type Round struct {
	// Label such as "R1" or "semi final"
	Name string

	// The matches that are played in this round
	Matches []*Match
}

// A slice of matches and a slice of rounds containing all
// matches.
type MatchList struct {
	Matches []*Match
	Rounds  []*Round
}

// Returns true when all matches in the list are decided
func (l *MatchList) MatchesComplete() bool {
	for _, m := range l.Matches {
		if !m.Decided() {
			return false
		}
	}
	return true
}
