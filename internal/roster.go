package internal

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Tour averages of service and return points won (in percent)
const (
	tourServeAverage  = 58
	tourReturnAverage = 42
)

var firstNames = []string{
	"Liam", "Noah", "Oliver", "Elijah", "James", "William", "Benjamin", "Lucas",
	"Henry", "Alexander", "Daniel", "Matthew", "Jack", "Sebastian", "Logan",
	"Michael", "Ethan", "Jacob", "Mason", "David", "Samuel", "Joseph", "John",
	"Owen", "Luke", "Gabriel", "Anthony", "Isaac", "Dylan", "Andrew",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson",
}

// A Roster hands out player IDs for exactly one simulation run.
// Runs that execute in parallel each own their roster.
type Roster struct {
	next int
}

func NewRoster() *Roster {
	return &Roster{}
}

// Creates a player with the given attributes and the next free ID.
// Fails when a skill attribute is not positive.
func (r *Roster) NewPlayer(name string, attributes Attributes, policy EntryPolicy) (*Player, error) {
	player := &Player{
		Name:              name,
		ServeStrength:     attributes.ServeStrength,
		ReturnStrength:    attributes.ReturnStrength,
		Form:              attributes.Form,
		BaseForm:          attributes.Form,
		Fitness:           1,
		InjuryThreshold:   attributes.InjuryThreshold,
		InjuryProbability: attributes.InjuryProbability,
		TournamentsWon:    make(map[Variant]int),
		Policy:            policy,
		id:                r.next,
	}

	if err := player.validate(); err != nil {
		return nil, err
	}

	r.next += 1

	return player, nil
}

// Generates num players with attributes drawn around the tour
// averages. The policies are assigned round-robin.
func (r *Roster) Generate(rng *rand.Rand, num int, policies []EntryPolicy) ([]*Player, error) {
	if len(policies) == 0 {
		return nil, ErrMissingPolicy
	}

	skill := distuv.Normal{Mu: 1, Sigma: 0.2, Src: rng}
	form := distuv.Normal{Mu: 1, Sigma: 0.25, Src: rng}
	threshold := distuv.Normal{Mu: 1, Sigma: 0.2, Src: rng}
	probability := distuv.Uniform{Min: 0.2, Max: 0.5, Src: rng}

	names := make(map[string]struct{}, num)
	players := make([]*Player, 0, num)
	for i := range num {
		name := r.uniqueName(rng, names)

		attributes := Attributes{
			ServeStrength:     tourServeAverage * truncated(skill, 0.3),
			ReturnStrength:    tourReturnAverage * truncated(skill, 0.3),
			Form:              truncated(form, 0.2),
			InjuryThreshold:   truncated(threshold, 0.3),
			InjuryProbability: probability.Rand(),
		}

		player, err := r.NewPlayer(name, attributes, policies[i%len(policies)])
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	return players, nil
}

func (r *Roster) uniqueName(rng *rand.Rand, taken map[string]struct{}) string {
	maxUnique := len(firstNames) * len(lastNames)
	for {
		name := fmt.Sprintf(
			"%s %s",
			firstNames[rng.IntN(len(firstNames))],
			lastNames[rng.IntN(len(lastNames))],
		)
		if len(taken) >= maxUnique {
			name = fmt.Sprintf("%s %d", name, r.next)
		}
		if _, ok := taken[name]; !ok {
			taken[name] = struct{}{}
			return name
		}
	}
}

// Draws from the distribution until the sample is at least floor
func truncated(dist distuv.Normal, floor float64) float64 {
	for {
		if v := dist.Rand(); v >= floor {
			return v
		}
	}
}
