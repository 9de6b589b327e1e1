package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEliminationStandings(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	players := newTestField(t, 8)

	tournament := simulatedTournament(t, e, eightDrawFormat(), players)

	standings := tournament.Standings()
	require.Len(t, standings, 4)
	assert.Equal(t, []*Player{tournament.Champion}, standings[0])
	assert.Equal(t, []*Player{tournament.Finalist}, standings[1])
	assert.Len(t, standings[2], 2)
	assert.Len(t, standings[3], 4)

	for _, m := range tournament.Rounds[0].Matches {
		assert.Contains(t, standings[3], m.Loser)
	}
}

func TestTieBrokenStandings(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	players := newTestField(t, 8)

	tournament := simulatedTournament(t, e, eightDrawFormat(), players)

	standings := tournament.Standings()
	broken := tournament.TieBrokenStandings()
	metrics := tournament.Metrics()

	assert.GreaterOrEqual(t, len(broken), len(standings))

	// Every broken rank is a part of one of the original ranks and
	// the order of the original ranks is kept
	original := make(map[*Player]int)
	for i, rank := range standings {
		for _, p := range rank {
			original[p] = i
		}
	}

	count := 0
	last := 0
	for _, rank := range broken {
		require.NotEmpty(t, rank)
		origin := original[rank[0]]
		assert.GreaterOrEqual(t, origin, last)
		last = origin
		for _, p := range rank {
			assert.Equal(t, origin, original[p])
			assert.Equal(t, metrics[rank[0]].SetDifference, metrics[p].SetDifference)
			assert.Equal(t, metrics[rank[0]].GameDifference, metrics[p].GameDifference)
			count += 1
		}
	}
	assert.Equal(t, 8, count)
}

func TestBreakTie(t *testing.T) {
	roster := NewRoster()
	a := newTestPlayer(t, roster, 60, 40)
	b := newTestPlayer(t, roster, 60, 40)
	c := newTestPlayer(t, roster, 60, 40)
	d := newTestPlayer(t, roster, 60, 40)

	metrics := map[*Player]*MatchMetrics{
		a: {SetDifference: -1, GameDifference: -3},
		b: {SetDifference: -1, GameDifference: -1},
		c: {SetDifference: -2, GameDifference: -4},
		d: {SetDifference: -1, GameDifference: -3},
	}

	broken := breakTie(metrics, []*Player{a, b, c, d}, tieBreakers)
	assert.Equal(t, [][]*Player{{b}, {a, d}, {c}}, broken)

	assert.Equal(t, [][]*Player{{a}}, breakTie(metrics, []*Player{a}, tieBreakers))
	assert.Equal(t, [][]*Player{{a, d}}, breakTie(metrics, []*Player{a, d}, nil))
}

func TestRemoveDoubleRanks(t *testing.T) {
	roster := NewRoster()
	a := newTestPlayer(t, roster, 60, 40)
	b := newTestPlayer(t, roster, 60, 40)
	c := newTestPlayer(t, roster, 60, 40)

	ranks := RemoveDoubleRanks([][]*Player{{a}, {b, a}, {a, b}, {c, b}})
	assert.Equal(t, [][]*Player{{a}, {b}, {c}}, ranks)
}
