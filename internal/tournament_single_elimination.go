package internal

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Builds the single elimination draw from the entrants.
//
// The entrants are sorted by ranking points. The top quarter of
// the draw size is seeded: the seeds are placed so that the top 2
// can only meet in the final, the top 4 only in the semi-finals
// and so on, and no two seeds meet in the first round. The seeds
// are shuffled within their tiers (3-4, 5-8, ...) and the
// unseeded entrants are drawn at random into the remaining
// places. Missing entrants become byes which face the top seeds
// first.
//
// All later rounds are created with empty slots that are filled
// by the winners while the tournament is simulated.
func (t *Tournament) GenerateDraw(e *Engine, entrants []*Player) error {
	drawSize := t.Format.DrawSize
	if len(entrants) > drawSize {
		return fmt.Errorf("%s: %d entrants for %d slots: %w", t.Name, len(entrants), drawSize, ErrDrawOverflow)
	}

	sorted := slices.Clone(entrants)
	slices.SortStableFunc(sorted, func(a, b *Player) int {
		return cmp.Compare(b.RankingPoints, a.RankingPoints)
	})

	numSeeds := min(drawSize/4, len(sorted))
	seeds := slices.Clone(sorted[:numSeeds])
	unseeded := slices.Clone(sorted[numSeeds:])

	t.Entrants = sorted
	t.Seeds = slices.Clone(seeds)

	SeededShuffle(seeds, SeedTiered, e.Rng)
	SeededShuffle(unseeded, SeedRandom, e.Rng)

	t.ids = idSequence{}

	entrySlots := make([]*Slot, 0, drawSize)
	for _, p := range seeds {
		entrySlots = append(entrySlots, NewPlayerSlot(p))
	}
	for _, p := range unseeded {
		entrySlots = append(entrySlots, NewPlayerSlot(p))
	}
	for len(entrySlots) < drawSize {
		entrySlots = append(entrySlots, NewByeSlot(true))
	}

	t.makeMatches(entrySlots)

	return nil
}

func (t *Tournament) makeMatches(entrySlots []*Slot) {
	numRounds := getNumRounds(len(entrySlots))
	setTarget := t.Format.SetTarget()

	t.EliminationGraph = NewEliminationGraph()

	rounds := make([]*Round, 0, numRounds)
	slots := entrySlots
	for i := range numRounds {
		round := &Round{Name: t.Format.RoundNames[i]}
		if i == 0 {
			round.Matches = CreateSeededMatches(slots, setTarget, &t.ids)
		} else {
			round.Matches = CreatePairedMatches(slots, setTarget, &t.ids)
		}

		for _, m := range round.Matches {
			t.EliminationGraph.AddVertex(m)
		}
		if i > 0 {
			linkMatches(rounds[i-1].Matches, round.Matches, t.EliminationGraph)
		}

		rounds = append(rounds, round)
		slots = createWinnerSlots(round.Matches)
	}

	numMatches := getNumMatches(numRounds)
	matches := make([]*Match, 0, numMatches)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}

	t.MatchList = &MatchList{Matches: matches, Rounds: rounds}
}

// Creates matches with the slots taken pair-wise from
// the entrySlots
func CreatePairedMatches(entrySlots []*Slot, setTarget int, ids *idSequence) []*Match {
	matches := make([]*Match, 0, len(entrySlots)>>1)
	for i := 0; i < len(entrySlots); i += 2 {
		match := NewMatch(entrySlots[i], entrySlots[i+1], setTarget, ids)
		matches = append(matches, match)
	}

	return matches
}

// Creates matches with the slots being arranged for
// a seeded elimination round
func CreateSeededMatches(entrySlots []*Slot, setTarget int, ids *idSequence) []*Match {
	numRounds := getNumRounds(len(entrySlots))
	seedMatchups := arrangeSeeds(numRounds)
	matches := make([]*Match, 0, len(seedMatchups))

	for _, matchup := range seedMatchups {
		match := NewMatch(entrySlots[matchup.seed1], entrySlots[matchup.seed2], setTarget, ids)
		matches = append(matches, match)
	}

	return matches
}

type seedMatchup struct {
	seed1 int
	seed2 int
}

// Arranges the seeds for the first elimination round of
// a total of numRounds.
//
// The arrangement ensures that the top 2 seeds can only
// meet in the final, the top 4 seeds can only meet
// in the semi-final, etc...
//
// More info: https://en.wikipedia.org/wiki/Single-elimination_tournament#Seeding
func arrangeSeeds(numRounds int) []*seedMatchup {
	// Start with the final between the first two seeds
	matchups := []*seedMatchup{{0, 1}}
	totalSeeds := 2

	// Work down the tournament tree by round (semis, quarters, ...)
	for i := 1; i < numRounds; i += 1 {
		nextMatchups := make([]*seedMatchup, 0, totalSeeds)
		totalSeeds *= 2
		for _, parent := range matchups {
			s1 := parent.seed1
			s2 := parent.seed2

			nextMatchups = append(
				nextMatchups,
				&seedMatchup{s1, totalSeeds - 1 - s1},
				&seedMatchup{s2, totalSeeds - 1 - s2},
			)
		}

		matchups = nextMatchups
	}

	return matchups
}

func createWinnerSlots(matches []*Match) []*Slot {
	slots := make([]*Slot, 0, len(matches))
	for _, m := range matches {
		slots = append(slots, NewSourceSlot(m))
	}
	return slots
}

func linkMatches(round, followingRound []*Match, eliminationGraph *EliminationGraph) {
	for i := range followingRound {
		match1 := round[2*i]
		match2 := round[2*i+1]
		followingMatch := followingRound[i]

		eliminationGraph.AddEdge(match1, followingMatch)
		eliminationGraph.AddEdge(match2, followingMatch)
	}
}

func getNumRounds(numSlots int) int {
	rounds := 0
	for numSlots > 1 {
		numSlots >>= 1
		rounds += 1
	}
	return rounds
}

func getNumMatches(numRounds int) int {
	numMatches := 0
	for i := range numRounds {
		numMatches += 1 << i
	}
	return numMatches
}

// Plays the tournament round by round.
//
// After every match both participants pay the match load (only
// the winner when it was a walkover) and the loser receives the
// ranking points of the round. Players who won their match on
// court go through an injury check before the next round is
// paired. The winner of the final receives the winner points and
// the title.
func (t *Tournament) Simulate(e *Engine) error {
	if t.MatchList == nil {
		return ErrNoDraw
	}

	last := len(t.Rounds) - 1
	for r, round := range t.Rounds {
		advancing := make([]*Player, 0, len(round.Matches))

		for _, m := range round.Matches {
			for s := range m.Slots {
				s.Update()
			}

			if err := m.Simulate(e); err != nil {
				return fmt.Errorf("%s %s: %w", t.Name, round.Name, err)
			}

			t.applyMatchLoad(e, m)
			if m.Loser != nil {
				t.award(m.Loser, t.Format.PointsForRound(r))
			}
			recordMatch(m)

			for _, next := range t.EliminationGraph.GetDependants(m) {
				for s := range next.Slots {
					s.Update()
				}
			}

			// The winner of the final has no further match to get injured for
			if m.Winner != nil && !m.IsWalkover() && t.EliminationGraph.Depth(m) > 0 {
				advancing = append(advancing, m.Winner)
			}
		}

		for _, p := range advancing {
			t.injuryCheck(e, p)
		}
	}

	final := t.Rounds[last].Matches[0]
	t.Champion = final.Winner
	t.Finalist = final.Loser
	if t.Champion != nil {
		t.award(t.Champion, t.Format.WinnerPoints)
		t.Champion.TournamentsWon[t.Format.Variant] += 1
	}

	for _, p := range t.Entrants {
		p.Form = p.BaseForm
	}

	e.Log.WithFields(logrus.Fields{
		"tournament": t.Name,
		"variant":    t.Format.Variant.String(),
		"entrants":   len(t.Entrants),
		"champion":   playerName(t.Champion),
	}).Debug("Tournament complete")

	return nil
}

func (t *Tournament) award(player *Player, points int) {
	player.RankingPoints += points
	t.Awarded[player] += points
}

// Applies the fitness cost and injury risk of one match
func (t *Tournament) applyMatchLoad(e *Engine, m *Match) {
	var players []*Player
	switch {
	case !m.IsWalkover():
		players = []*Player{m.Winner, m.Loser}
	case m.Winner != nil:
		players = []*Player{m.Winner}
	}

	risk := t.Format.MatchRisk
	for _, p := range players {
		p.adjustFitness(-risk * e.Rules.FitnessCostScale)
		p.InjuryRisk += risk * (2 - p.Fitness)
	}
}

// Injures the player with their injury probability once the
// accumulated risk reached their threshold. An injury resets the
// accumulated risk.
func (t *Tournament) injuryCheck(e *Engine, player *Player) {
	if player.InjuryRisk < player.InjuryThreshold {
		return
	}
	if e.bernoulli(player.InjuryProbability) {
		player.Injured = true
		player.InjuryRisk = 0
		e.Log.WithFields(logrus.Fields{
			"tournament": t.Name,
			"player":     player.Name,
		}).Debug("Player injured")
	}
}

func playerName(p *Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}
