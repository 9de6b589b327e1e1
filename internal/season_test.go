package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeason(t *testing.T, seed uint64, numPlayers int) *Season {
	t.Helper()
	e, err := NewEngine(seed, 0, DefaultRules(), nil)
	require.NoError(t, err)

	players, err := NewRoster().Generate(e.Rng, numPlayers, AllPolicies())
	require.NoError(t, err)

	season, err := NewSeason(e, DefaultCalendar(), players)
	require.NoError(t, err)
	return season
}

func assertRankingPermutation(t *testing.T, players []*Player) {
	t.Helper()
	rankings := make([]int, 0, len(players))
	for _, p := range players {
		rankings = append(rankings, p.Ranking)
	}
	slices.Sort(rankings)
	for i, r := range rankings {
		require.Equal(t, i+1, r, "ranking is not a permutation of 1..N")
	}

	for i := 1; i < len(players); i++ {
		require.GreaterOrEqual(t, players[i-1].RankingPoints, players[i].RankingPoints)
	}
}

func assertFitnessInRange(t *testing.T, players []*Player) {
	t.Helper()
	for _, p := range players {
		require.GreaterOrEqual(t, p.Fitness, 0.0, "%v", p)
		require.LessOrEqual(t, p.Fitness, 1.0, "%v", p)
	}
}

func TestSeasonInvariants(t *testing.T) {
	season := newTestSeason(t, 3, 150)

	entries := make(map[int]map[*Player]string)
	season.Observer = func(week int, tournament *Tournament) error {
		assertFitnessInRange(t, season.Players)

		if entries[week] == nil {
			entries[week] = make(map[*Player]string)
		}
		for _, p := range tournament.Entrants {
			other, ok := entries[week][p]
			assert.False(t, ok, "%v entered %s and %s in week %d", p, other, tournament.Name, week)
			entries[week][p] = tournament.Name
		}
		assert.LessOrEqual(t, len(tournament.Entrants), tournament.Format.DrawSize)
		return nil
	}

	for !season.Done() {
		require.NoError(t, season.SimulateWeek())
		assertRankingPermutation(t, season.Players)
		assertFitnessInRange(t, season.Players)
	}

	assert.Equal(t, 34, season.Week)
	assert.Len(t, season.History, 59)

	champions := 0
	for _, result := range season.History {
		if result.Champion != nil {
			champions += 1
		}
	}
	assert.NotZero(t, champions)

	points := 0
	for _, p := range season.Players {
		points += p.RankingPoints
	}
	assert.Positive(t, points)
}

func TestSeasonReproducible(t *testing.T) {
	a := newTestSeason(t, 11, 80)
	b := newTestSeason(t, 11, 80)

	for range 6 {
		require.NoError(t, a.SimulateWeek())
		require.NoError(t, b.SimulateWeek())
	}

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSeasonEmptyField(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	season, err := NewSeason(e, DefaultCalendar(), nil)
	require.NoError(t, err)

	var first *Tournament
	season.Observer = func(week int, tournament *Tournament) error {
		if first == nil {
			first = tournament
		}
		return nil
	}

	require.NoError(t, season.SimulateWeek())
	require.NotNil(t, first)
	for _, m := range first.Rounds[0].Matches {
		assert.True(t, m.IsWalkover())
	}
	assert.Nil(t, first.Champion)
	assert.Equal(t, 1, season.Week)
}

func TestRestingRecovery(t *testing.T) {
	rules := DefaultRules()
	rules.InjuryRecoveryChance = 1
	e, err := NewEngine(5, 5, rules, nil)
	require.NoError(t, err)

	players := newTestField(t, 2)
	injured := players[0]
	injured.Injured = true
	injured.Fitness = 0.5
	tired := players[1]
	tired.Policy = BigEventFocus{}
	tired.Fitness = 0.95

	calendar := &Calendar{Weeks: []Week{{{Name: "Small", Court: "Hard", Variant: "ATP250"}}}}
	season, err := NewSeason(e, calendar, players)
	require.NoError(t, err)
	require.NoError(t, season.SimulateWeek())

	assert.False(t, injured.Injured)
	assert.InDelta(t, 0.6, injured.Fitness, 1e-12)
	assert.Equal(t, 1.0, tired.Fitness, "fitness is capped at 1")
	assert.True(t, season.Done())
	require.NoError(t, season.SimulateWeek())
	assert.Equal(t, 1, season.Week)
}

func TestEstimators(t *testing.T) {
	players := newTestField(t, 20)
	e := newTestEngine(t, ClosedForm)
	season, err := NewSeason(e, DefaultCalendar(), players)
	require.NoError(t, err)

	slam, err := NewTournament("Slam", Hard, GrandSlam)
	require.NoError(t, err)
	small, err := NewTournament("Small", Hard, ATP250)
	require.NoError(t, err)

	strong, weak := players[0], players[19]

	for _, tournament := range []*Tournament{slam, small} {
		rounds := float64(tournament.Format.NumRounds())
		for _, p := range players {
			matches := season.ExpectedMatches(p, tournament)
			assert.GreaterOrEqual(t, matches, 1.0)
			assert.LessOrEqual(t, matches, rounds)

			risk := season.TournamentRisk(tournament, p)
			assert.GreaterOrEqual(t, risk, 0.0)
			assert.LessOrEqual(t, risk, p.InjuryProbability)
		}

		assert.Greater(t,
			season.SkillBasedExpectedPoints(strong, tournament),
			season.SkillBasedExpectedPoints(weak, tournament),
		)
		assert.GreaterOrEqual(t,
			season.SkillBasedExpectedPoints(weak, tournament),
			float64(tournament.Format.LoserPoints[0]),
		)
	}

	assert.Greater(t, season.SkillBasedExpectedPoints(strong, slam), season.SkillBasedExpectedPoints(strong, small))
	assert.Greater(t, season.ExpectedMatches(strong, slam), season.ExpectedMatches(strong, small))

	before := season.TournamentRisk(slam, strong)
	strong.InjuryRisk = 0.5
	assert.Greater(t, season.TournamentRisk(slam, strong), before)
	strong.InjuryRisk = 10
	assert.Equal(t, strong.InjuryProbability, season.TournamentRisk(slam, strong))

	// The baseline is the mean skill of the whole field when it is
	// smaller than the baseline size
	sum := 0.0
	for _, p := range players {
		sum += skillOf(p)
	}
	assert.InDelta(t, sum/float64(len(players)), season.fieldBaseline(), 1e-9)
}

func TestNewSeasonValidation(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	players := newTestField(t, 2)

	players[1].Policy = nil
	_, err := NewSeason(e, DefaultCalendar(), players)
	assert.ErrorIs(t, err, ErrMissingPolicy)

	players[1].Policy = Original{}
	players[1].ServeStrength = -1
	_, err = NewSeason(e, DefaultCalendar(), players)
	assert.ErrorIs(t, err, ErrNonPositiveSkill)

	_, err = NewSeason(e, &Calendar{}, nil)
	assert.ErrorIs(t, err, ErrMalformedCalendar)
}

func TestSnapshot(t *testing.T) {
	season := newTestSeason(t, 9, 40)
	require.NoError(t, season.SimulateWeek())

	snapshot := season.Snapshot()
	require.Len(t, snapshot, 40)
	for i, s := range snapshot {
		assert.Equal(t, i+1, s.Ranking)
		assert.Equal(t, season.Players[i].Name, s.Name)
	}

	// Changing the copy leaves the players untouched
	snapshot[0].TournamentsWon[GrandSlam] = 99
	assert.NotEqual(t, 99, season.Players[0].TournamentsWon[GrandSlam])
}
