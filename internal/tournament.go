package internal

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	ErrUnknownVariant = errors.New("unknown tournament variant")
	ErrUnknownCourt   = errors.New("unknown court type")
	ErrInvalidFormat  = errors.New("invalid tournament format")
	ErrDrawOverflow   = errors.New("more entrants than draw slots")
	ErrNoDraw         = errors.New("the draw has not been generated")
)

// The tier of a tournament
type Variant int

const (
	GrandSlam Variant = iota
	Master1000
	ATP500
	ATP250
)

var Variants = []Variant{GrandSlam, Master1000, ATP500, ATP250}

func (v Variant) String() string {
	switch v {
	case GrandSlam:
		return "GrandSlam"
	case Master1000:
		return "Master1000"
	case ATP500:
		return "ATP500"
	case ATP250:
		return "ATP250"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownVariant)
}

type Court int

const (
	Hard Court = iota
	Clay
	Grass
)

func (c Court) String() string {
	switch c {
	case Hard:
		return "Hard"
	case Clay:
		return "Clay"
	case Grass:
		return "Grass"
	}
	return fmt.Sprintf("Court(%d)", int(c))
}

func ParseCourt(name string) (Court, error) {
	for _, c := range []Court{Hard, Clay, Grass} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownCourt)
}

// The configuration of a tournament tier. The tiers share all of
// their behaviour and only differ in this data.
type Format struct {
	Variant  Variant
	DrawSize int
	// One label per round, the last one is the final
	RoundNames []string
	// Points for the losers of each round except the final
	LoserPoints    []int
	FinalistPoints int
	WinnerPoints   int
	// Scales the fitness cost and injury risk of each match
	MatchRisk float64
	BestOf    int
}

var formats = map[Variant]Format{
	GrandSlam: {
		Variant:        GrandSlam,
		DrawSize:       128,
		RoundNames:     []string{"R1", "R2", "R3", "R4", "quarter final", "semi final", "final"},
		LoserPoints:    []int{10, 50, 100, 200, 400, 800},
		FinalistPoints: 1300,
		WinnerPoints:   2000,
		MatchRisk:      0.04,
		BestOf:         5,
	},
	Master1000: {
		Variant:        Master1000,
		DrawSize:       64,
		RoundNames:     []string{"R1", "R2", "R3", "quarter final", "semi final", "final"},
		LoserPoints:    []int{30, 50, 100, 200, 400},
		FinalistPoints: 650,
		WinnerPoints:   1000,
		MatchRisk:      0.03,
		BestOf:         3,
	},
	ATP500: {
		Variant:        ATP500,
		DrawSize:       32,
		RoundNames:     []string{"R1", "R2", "quarter final", "semi final", "final"},
		LoserPoints:    []int{25, 50, 100, 200},
		FinalistPoints: 330,
		WinnerPoints:   500,
		MatchRisk:      0.025,
		BestOf:         3,
	},
	ATP250: {
		Variant:        ATP250,
		DrawSize:       32,
		RoundNames:     []string{"R1", "R2", "quarter final", "semi final", "final"},
		LoserPoints:    []int{13, 25, 50, 100},
		FinalistPoints: 165,
		WinnerPoints:   250,
		MatchRisk:      0.02,
		BestOf:         3,
	},
}

// Returns the format of the given tier
func FormatOf(variant Variant) (Format, error) {
	format, ok := formats[variant]
	if !ok {
		return Format{}, fmt.Errorf("%v: %w", variant, ErrUnknownVariant)
	}
	return format, nil
}

// Returns the number of rounds of the draw
func (f Format) NumRounds() int {
	return getNumRounds(f.DrawSize)
}

// Returns the number of sets needed to win a match
func (f Format) SetTarget() int {
	return f.BestOf/2 + 1
}

func (f Format) Validate() error {
	switch {
	case f.DrawSize < 2 || bits.OnesCount(uint(f.DrawSize)) != 1:
		return fmt.Errorf("draw size %d is not a power of two: %w", f.DrawSize, ErrInvalidFormat)
	case len(f.RoundNames) != f.NumRounds():
		return fmt.Errorf("%d round names for %d rounds: %w", len(f.RoundNames), f.NumRounds(), ErrInvalidFormat)
	case len(f.LoserPoints) != f.NumRounds()-1:
		return fmt.Errorf("%d loser point entries for %d rounds: %w", len(f.LoserPoints), f.NumRounds(), ErrInvalidFormat)
	case f.BestOf < 1 || f.BestOf%2 == 0:
		return fmt.Errorf("best of %d: %w", f.BestOf, ErrInvalidFormat)
	case f.MatchRisk < 0:
		return fmt.Errorf("negative match risk: %w", ErrInvalidFormat)
	}
	return nil
}

// Returns the points for losing in the given round. The final
// round returns the finalist points.
func (f Format) PointsForRound(round int) int {
	if round == f.NumRounds()-1 {
		return f.FinalistPoints
	}
	return f.LoserPoints[round]
}

// A Tournament is one edition of an event on the calendar.
//
// Its draw is generated from the entrants and then simulated
// round by round. Ranking points, fitness costs and injuries are
// applied to the players while the rounds are played.
type Tournament struct {
	Name   string
	Court  Court
	Format Format

	// The entrants sorted by ranking points
	Entrants []*Player
	// The seeded entrants in seed order
	Seeds []*Player

	*MatchList
	EliminationGraph *EliminationGraph

	Champion *Player
	Finalist *Player

	// Ranking points given to each player in this tournament
	Awarded map[*Player]int

	ids idSequence
}

func NewTournament(name string, court Court, variant Variant) (*Tournament, error) {
	format, err := FormatOf(variant)
	if err != nil {
		return nil, err
	}
	return NewTournamentWithFormat(name, court, format)
}

func NewTournamentWithFormat(name string, court Court, format Format) (*Tournament, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tournament := &Tournament{
		Name:    name,
		Court:   court,
		Format:  format,
		Awarded: make(map[*Player]int),
	}
	return tournament, nil
}

func (t *Tournament) Variant() Variant {
	return t.Format.Variant
}

func (t *Tournament) String() string {
	return fmt.Sprintf("%s (%v, %v)", t.Name, t.Format.Variant, t.Court)
}
