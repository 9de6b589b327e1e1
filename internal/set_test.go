package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSetScore(games [2]int) bool {
	w := max(games[0], games[1])
	l := min(games[0], games[1])
	switch {
	case w == 6 && l <= 4:
		return true
	case w == 7 && (l == 5 || l == 6):
		return true
	}
	return false
}

func TestSetScores(t *testing.T) {
	for _, model := range []GameModel{ClosedForm, Iterative} {
		e := newTestEngine(t, model)
		roster := NewRoster()
		a := newTestPlayer(t, roster, 58, 42)
		b := newTestPlayer(t, roster, 60, 40)

		tiebreaks := 0
		for range 1000 {
			set := NewSet(a, b)
			next, nextReturner, err := set.Simulate(e)
			require.NoError(t, err)
			require.NotNil(t, set.Winner)

			assert.True(t, validSetScore(set.Games), "invalid set score %v", set.Games)

			if set.Games[0] > set.Games[1] {
				assert.Same(t, a, set.Winner)
			} else {
				assert.Same(t, b, set.Winner)
			}

			if set.Tiebreak != nil {
				tiebreaks += 1
				assert.Equal(t, 12, set.NumGames)
				assert.ElementsMatch(t, []int{7, 6}, set.Games[:])
				assert.Same(t, set.Tiebreak.Winner, set.Winner)
			} else {
				assert.Equal(t, set.Games[0]+set.Games[1], set.NumGames)
			}

			assert.NotSame(t, next, nextReturner)
			assert.ElementsMatch(t, []*Player{a, b}, []*Player{next, nextReturner})
		}
		assert.NotZero(t, tiebreaks, "no set went to a tiebreak")
	}
}

// The player who returned in the last game serves first in the
// next set
func TestSetServeAlternation(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	roster := NewRoster()
	a := newTestPlayer(t, roster, 58, 42)
	b := newTestPlayer(t, roster, 58, 42)

	for range 200 {
		set := NewSet(a, b)
		next, _, err := set.Simulate(e)
		require.NoError(t, err)

		total := set.NumGames
		if set.Tiebreak != nil {
			total += 1
		}
		if total%2 == 0 {
			assert.Same(t, a, next)
		} else {
			assert.Same(t, b, next)
		}
	}
}

func TestSetWinner(t *testing.T) {
	cases := []struct {
		games  [2]int
		winner int
		ok     bool
	}{
		{[2]int{6, 0}, 0, true},
		{[2]int{4, 6}, 1, true},
		{[2]int{6, 5}, -1, false},
		{[2]int{7, 5}, 0, true},
		{[2]int{5, 5}, -1, false},
		{[2]int{6, 6}, -1, false},
	}
	for _, c := range cases {
		winner, ok := setWinner(c.games)
		assert.Equal(t, c.ok, ok, "%v", c.games)
		assert.Equal(t, c.winner, winner, "%v", c.games)
	}
}
