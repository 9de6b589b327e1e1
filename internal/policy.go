package internal

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownPolicy = errors.New("unknown entry policy")

// The estimates about the live field that entry policies base
// their decision on. The season implements this.
type FieldView interface {
	// Ranking points the player is expected to win in the tournament
	SkillBasedExpectedPoints(player *Player, t *Tournament) float64
	// Probability that entering the tournament ends with an injury
	TournamentRisk(t *Tournament, player *Player) float64
	// Number of matches the player is expected to play
	ExpectedMatches(player *Player, t *Tournament) float64
}

// An EntryPolicy decides whether a player enters a tournament
// that is offered to them. Implementations must not mutate any
// of their arguments.
type EntryPolicy interface {
	Name() string
	ShouldEnter(player *Player, t *Tournament, field FieldView) bool
}

// The prestige of each tier used to weigh the expected points
var importance = map[Variant]float64{
	GrandSlam:  10,
	Master1000: 7,
	ATP500:     4,
	ATP250:     2,
}

func isBigEvent(v Variant) bool {
	return v == GrandSlam || v == Master1000
}

// Weighs the expected points against the ranking pressure, the
// fitness and the danger of getting injured. A payoff far below
// zero passes the threshold just like a large positive one.
type Original struct{}

func (Original) Name() string {
	return "Original"
}

func (Original) ShouldEnter(player *Player, t *Tournament, field FieldView) bool {
	if player.Injured || player.Fitness < 0.15 {
		return false
	}

	variant := t.Variant()
	fitnessMultiplier := max(0.5, player.Fitness)

	rankingMultiplier := 1.0
	switch {
	case player.Ranking > 100:
		rankingMultiplier += 0.3
	case player.Ranking > 50:
		rankingMultiplier += 0.1
	}

	proximity := player.InjuryProximity()
	proximityMultiplier := 1.0
	switch {
	case proximity > 0.7:
		proximityMultiplier = 0.05
	case proximity > 0.5:
		proximityMultiplier = 0.1
	case proximity > 0.3:
		proximityMultiplier = 0.2
	}

	// Cost of the tournaments that would be missed after an injury
	risk := field.TournamentRisk(t, player)
	injuryCost := 0.0
	if risk > 0.05 {
		injuryCost = risk * importance[variant] * 100
	}

	expected := field.SkillBasedExpectedPoints(player, t)
	payoff := expected*importance[variant]*rankingMultiplier*fitnessMultiplier*proximityMultiplier - injuryCost

	baseThreshold := map[Variant]float64{
		GrandSlam:  1,
		Master1000: 2,
		ATP500:     3,
		ATP250:     4,
	}[variant]

	threshold := baseThreshold
	switch {
	case variant == GrandSlam && proximity < 0.8:
	case proximity > 0.6:
		threshold *= 1.5
	case proximity > 0.4:
		threshold *= 1.2
	}

	// Only the magnitude of the payoff is compared
	return math.Abs(payoff) > threshold
}

// Picks tournaments by the player's ranking tier: the top 10 are
// selective outside the big events and players outside the top
// 100 play almost everything
type RankingBased struct{}

func (RankingBased) Name() string {
	return "RankingBased"
}

func (RankingBased) ShouldEnter(player *Player, t *Tournament, field FieldView) bool {
	if player.Injured || player.Fitness < 0.15 {
		return false
	}

	variant := t.Variant()
	proximity := player.InjuryProximity()

	switch {
	case player.Ranking <= 10:
		switch variant {
		case ATP500:
			return player.Fitness > 0.7 && proximity < 0.3
		case ATP250:
			return player.Fitness > 0.8 && proximity < 0.2
		}
		return isBigEvent(variant)

	case player.Ranking <= 50:
		switch variant {
		case ATP500:
			return proximity < 0.5
		case ATP250:
			return proximity < 0.4 && field.SkillBasedExpectedPoints(player, t) > 20
		}
		return isBigEvent(variant)

	case player.Ranking <= 100:
		switch variant {
		case ATP500:
			return proximity < 0.6
		case ATP250:
			return proximity < 0.5 && player.Fitness > 0.3
		}
		return isBigEvent(variant)
	}

	return proximity <= 0.7 && player.Fitness >= 0.2
}

// Only plays while fit and far from the injury threshold and
// only when the risk adjusted value is high
type InjuryAvoider struct {
	// Highest tolerated injury proximity outside the Grand Slams
	ProximityLimit float64
	// Lowest fitness to enter anything
	FitnessLimit float64
}

func NewInjuryAvoider() InjuryAvoider {
	return InjuryAvoider{ProximityLimit: 0.2, FitnessLimit: 0.6}
}

func (InjuryAvoider) Name() string {
	return "InjuryAvoider"
}

func (a InjuryAvoider) ShouldEnter(player *Player, t *Tournament, field FieldView) bool {
	if player.Injured || player.Fitness < a.FitnessLimit {
		return false
	}

	variant := t.Variant()
	proximity := player.InjuryProximity()
	if proximity > a.ProximityLimit {
		return false
	}

	risk := field.TournamentRisk(t, player)
	if risk > 0.1 && variant != GrandSlam {
		return false
	}
	if variant == GrandSlam && proximity > 0.4 {
		return false
	}

	threshold := map[Variant]float64{
		GrandSlam:  50,
		Master1000: 30,
		ATP500:     20,
		ATP250:     15,
	}[variant]

	value := field.SkillBasedExpectedPoints(player, t) * importance[variant] * (1 - risk)
	return value > threshold
}

// Only enters Grand Slams and Masters 1000
type BigEventFocus struct{}

func (BigEventFocus) Name() string {
	return "BigEventFocus"
}

func (BigEventFocus) ShouldEnter(player *Player, t *Tournament, field FieldView) bool {
	if player.Injured || player.Fitness < 0.15 {
		return false
	}
	return isBigEvent(t.Variant())
}

// Enters everything unless injured or completely exhausted
type PlayEverything struct{}

func (PlayEverything) Name() string {
	return "PlayEverything"
}

func (PlayEverything) ShouldEnter(player *Player, t *Tournament, field FieldView) bool {
	return !player.Injured && player.Fitness >= 0.1
}

// Returns the policy with the given name
func PolicyByName(name string) (EntryPolicy, error) {
	switch name {
	case "Original":
		return Original{}, nil
	case "RankingBased":
		return RankingBased{}, nil
	case "InjuryAvoider":
		return NewInjuryAvoider(), nil
	case "BigEventFocus":
		return BigEventFocus{}, nil
	case "PlayEverything":
		return PlayEverything{}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
}

// Returns one instance of every policy
func AllPolicies() []EntryPolicy {
	return []EntryPolicy{
		Original{},
		RankingBased{},
		NewInjuryAvoider(),
		BigEventFocus{},
		PlayEverything{},
	}
}
