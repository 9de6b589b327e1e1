package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(p1, p2 *Player, setTarget int) *Match {
	ids := &idSequence{}
	slot1 := NewByeSlot(true)
	if p1 != nil {
		slot1 = NewPlayerSlot(p1)
	}
	slot2 := NewByeSlot(true)
	if p2 != nil {
		slot2 = NewPlayerSlot(p2)
	}
	return NewMatch(slot1, slot2, setTarget, ids)
}

func TestMatchResult(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	roster := NewRoster()
	a := newTestPlayer(t, roster, 58, 42)
	b := newTestPlayer(t, roster, 60, 41)

	for _, setTarget := range []int{2, 3} {
		for range 300 {
			a.Form, b.Form = 1, 1
			match := newTestMatch(a, b, setTarget)
			require.NoError(t, match.Simulate(e))

			require.True(t, match.Decided())
			require.NotNil(t, match.Winner)
			require.NotNil(t, match.Loser)
			assert.NotSame(t, match.Winner, match.Loser)
			assert.False(t, match.IsWalkover())

			assert.Equal(t, setTarget, match.SetsWon(match.Winner))
			assert.Less(t, match.SetsWon(match.Loser), setTarget)
			assert.Len(t, match.Sets, match.SetsWon(match.Winner)+match.SetsWon(match.Loser))

			winner, err := match.Score.GetWinner()
			require.NoError(t, err)
			if match.Winner == a {
				assert.Equal(t, 0, winner)
			} else {
				assert.Equal(t, 1, winner)
			}
			assert.Len(t, match.Score.Points1(), len(match.Sets))
		}
	}
}

func TestMatchForm(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	roster := NewRoster()
	a := newTestPlayer(t, roster, 58, 42)
	b := newTestPlayer(t, roster, 58, 42)

	match := newTestMatch(a, b, 2)
	require.NoError(t, match.Simulate(e))

	assert.InDelta(t, 1.1, match.Winner.Form, 1e-12)
	assert.InDelta(t, 0.9, match.Loser.Form, 1e-12)

	// The form never drops below the floor
	a.Form, b.Form = 0.06, 0.06
	for range 20 {
		match := newTestMatch(a, b, 2)
		require.NoError(t, match.Simulate(e))
		assert.GreaterOrEqual(t, match.Loser.Form, e.Rules.MinForm)
	}
}

func TestMatchWalkovers(t *testing.T) {
	e := newTestEngine(t, ClosedForm)
	roster := NewRoster()
	a := newTestPlayer(t, roster, 58, 42)
	b := newTestPlayer(t, roster, 58, 42)

	absent := newTestMatch(a, nil, 2)
	require.NoError(t, absent.Simulate(e))
	assert.Same(t, a, absent.Winner)
	assert.Nil(t, absent.Loser)
	assert.Equal(t, WalkoverAbsent, absent.Walkover)
	assert.Empty(t, absent.Sets)
	assert.Nil(t, absent.Score)
	assert.Equal(t, 1.0, a.Form, "walkovers do not change the form")

	b.Injured = true
	injured := newTestMatch(a, b, 2)
	require.NoError(t, injured.Simulate(e))
	assert.Same(t, a, injured.Winner)
	assert.Same(t, b, injured.Loser)
	assert.Equal(t, WalkoverInjured, injured.Walkover)
	assert.Equal(t, []*Player{b}, injured.WithdrawnPlayers)
	assert.Empty(t, injured.Sets)

	a.Injured = true
	both := newTestMatch(a, b, 2)
	require.NoError(t, both.Simulate(e))
	assert.True(t, both.Decided())
	assert.Nil(t, both.Winner)
	assert.Nil(t, both.Loser)
	assert.ElementsMatch(t, []*Player{a, b}, both.WithdrawnPlayers)

	for _, bye := range []*Match{newTestMatch(a, nil, 2), newTestMatch(nil, a, 2)} {
		require.NoError(t, bye.Simulate(e))
		assert.True(t, bye.Decided())
		assert.Nil(t, bye.Winner, "an injured player does not advance through a bye")
		assert.Nil(t, bye.Loser)
		assert.Equal(t, WalkoverInjured, bye.Walkover)
		assert.Equal(t, []*Player{a}, bye.WithdrawnPlayers)

		next := NewSourceSlot(bye)
		next.Update()
		assert.Nil(t, next.Player)
		assert.True(t, next.IsBye())
	}

	empty := newTestMatch(nil, nil, 2)
	require.NoError(t, empty.Simulate(e))
	assert.Nil(t, empty.Winner)
	assert.Equal(t, WalkoverAbsent, empty.Walkover)

	assert.ErrorIs(t, empty.Simulate(e), ErrMatchDecided)
}

func TestMatchString(t *testing.T) {
	roster := NewRoster()
	a := newTestPlayer(t, roster, 58, 42)

	match := newTestMatch(a, nil, 2)
	assert.Equal(t, "Player 0 vs. [Bye]", match.String())

	require.NoError(t, match.Simulate(newTestEngine(t, ClosedForm)))
	assert.Equal(t, "Player 0 vs. [Bye]\tw/o (absent)", match.String())
}

func TestScoreInvert(t *testing.T) {
	score := &matchScore{a: []int{6, 3, 7}, b: []int{4, 6, 6}}
	winner, err := score.GetWinner()
	require.NoError(t, err)
	assert.Equal(t, 0, winner)

	inverted := score.Invert()
	assert.Equal(t, []int{4, 6, 6}, inverted.Points1())
	winner, err = inverted.GetWinner()
	require.NoError(t, err)
	assert.Equal(t, 1, winner)

	_, err = (&matchScore{}).GetWinner()
	assert.ErrorIs(t, err, ErrUndetermined)
}
