package internal

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGameModel = errors.New("unknown game model")
	ErrInvalidRules     = errors.New("invalid simulation rules")
)

// Selects how a service game is resolved
type GameModel int

const (
	// One draw against the Hold absorption probability
	ClosedForm GameModel = iota
	// Point by point walk through the score progression
	Iterative
)

func (m GameModel) String() string {
	switch m {
	case ClosedForm:
		return "closed_form"
	case Iterative:
		return "iterative"
	}
	return fmt.Sprintf("GameModel(%d)", int(m))
}

func ParseGameModel(name string) (GameModel, error) {
	switch name {
	case "closed_form", "closed-form", "closedform":
		return ClosedForm, nil
	case "iterative":
		return Iterative, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownGameModel)
}

// The tunable constants of a simulation run
type Rules struct {
	GameModel GameModel

	// Form gained by the winner and lost by the loser of a played match
	FormStep float64
	// Lower bound for the form so the point probability never degenerates
	MinForm float64

	// Tiebreak score at which a coin flip ends the tiebreak.
	// This is a loop guard, not a tennis rule.
	TiebreakPointCap int

	// Fitness lost per match is the tournament's match risk times this
	FitnessCostScale float64
	// Fitness regained per resting week
	FitnessRecovery float64
	// Chance per resting week that an injured player recovers
	InjuryRecoveryChance float64

	// Number of top ranked players used as the field strength baseline
	FieldBaselineSize int
}

func DefaultRules() Rules {
	return Rules{
		GameModel:            ClosedForm,
		FormStep:             0.1,
		MinForm:              0.05,
		TiebreakPointCap:     50,
		FitnessCostScale:     2.5,
		FitnessRecovery:      0.1,
		InjuryRecoveryChance: 0.5,
		FieldBaselineSize:    128,
	}
}

func (r Rules) Validate() error {
	switch {
	case r.GameModel != ClosedForm && r.GameModel != Iterative:
		return ErrUnknownGameModel
	case r.FormStep < 0:
		return fmt.Errorf("negative form step: %w", ErrInvalidRules)
	case !(r.MinForm > 0):
		return fmt.Errorf("min form must be positive: %w", ErrInvalidRules)
	case r.TiebreakPointCap < 7:
		return fmt.Errorf("tiebreak point cap below 7: %w", ErrInvalidRules)
	case r.FitnessCostScale < 0 || r.FitnessRecovery < 0:
		return fmt.Errorf("negative fitness rate: %w", ErrInvalidRules)
	case r.InjuryRecoveryChance < 0 || r.InjuryRecoveryChance > 1:
		return fmt.Errorf("injury recovery chance outside [0, 1]: %w", ErrInvalidRules)
	case r.FieldBaselineSize <= 0:
		return fmt.Errorf("field baseline size must be positive: %w", ErrInvalidRules)
	}
	return nil
}
