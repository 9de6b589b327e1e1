package internal

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositiveSkill = errors.New("skill attributes must be positive")
	ErrInjuryParameters = errors.New("injury parameters are out of range")
	ErrMissingPolicy    = errors.New("player has no entry policy")
)

// A Player is one professional taking part in the season.
//
// Skill attributes are fixed at creation except for Form which
// moves with match results and returns to BaseForm after every
// tournament. The physical and career state is mutated by the
// tournaments and the season scheduler.
type Player struct {
	Name string

	ServeStrength  float64
	ReturnStrength float64
	Form           float64
	BaseForm       float64

	// Fitness is kept in [0, 1]
	Fitness float64
	// Accumulates with every match until an injury resets it
	InjuryRisk        float64
	InjuryThreshold   float64
	InjuryProbability float64
	Injured           bool

	RankingPoints int
	// Position in the live ranking, 1 is the top
	Ranking int

	TournamentsWon map[Variant]int
	Stats          MatchMetrics

	Policy EntryPolicy

	id int
}

// Returns the ID that was handed out by the roster that
// created this player
func (p *Player) Id() int {
	return p.id
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (#%d)", p.Name, p.id)
}

// Returns how close the player is to their injury threshold.
// A value of 1 or more means the next injury check can trigger.
func (p *Player) InjuryProximity() float64 {
	if p.InjuryThreshold <= 0 {
		return 0
	}
	return p.InjuryRisk / p.InjuryThreshold
}

// Adds delta to the fitness and clamps the result to [0, 1]
func (p *Player) adjustFitness(delta float64) {
	p.Fitness = clamp(p.Fitness+delta, 0, 1)
}

func (p *Player) validate() error {
	skills := []float64{p.ServeStrength, p.ReturnStrength, p.Form}
	for _, s := range skills {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%v: %w", p, ErrNonPositiveSkill)
		}
	}

	switch {
	case p.InjuryThreshold < 0, p.InjuryRisk < 0:
		return fmt.Errorf("%v: %w", p, ErrInjuryParameters)
	case p.InjuryProbability < 0 || p.InjuryProbability > 1:
		return fmt.Errorf("%v: %w", p, ErrInjuryParameters)
	}

	return nil
}

// The skill and physical attributes of a new player
type Attributes struct {
	ServeStrength     float64
	ReturnStrength    float64
	Form              float64
	InjuryThreshold   float64
	InjuryProbability float64
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
