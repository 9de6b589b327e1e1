package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Hold probability of a service game with deuce and advantage
func analyticHold(p float64) float64 {
	q := 1 - p
	beforeDeuce := math.Pow(p, 4) * (1 + 4*q + 10*q*q)
	deuce := 20 * math.Pow(p*q, 3) * p * p / (1 - 2*p*q)
	return beforeDeuce + deuce
}

func testGame(t *testing.T, serve, ret float64) *Game {
	t.Helper()
	roster := NewRoster()
	server := newTestPlayer(t, roster, serve, 42)
	returner := newTestPlayer(t, roster, 58, ret)
	game, err := NewGame(server, returner)
	require.NoError(t, err)
	return game
}

func TestTransitionMatrix(t *testing.T) {
	game := testGame(t, 58, 42)
	chain := game.TransitionMatrix()

	rows, cols := chain.Dims()
	require.Equal(t, NumGameStates, rows)
	require.Equal(t, NumGameStates, cols)

	for i := range rows {
		sum := 0.0
		for j := range cols {
			sum += chain.At(i, j)
		}
		assert.InDelta(t, 1, sum, 1e-12, "row %v", GameState(i))
	}

	assert.Equal(t, 1.0, chain.At(int(Hold), int(Hold)))
	assert.Equal(t, 1.0, chain.At(int(Break), int(Break)))
}

func TestAbsorptionRowsSumToOne(t *testing.T) {
	for _, serve := range []float64{10, 42, 58, 90, 400} {
		game := testGame(t, serve, 42)
		absorption, err := game.AbsorptionProbabilities()
		require.NoError(t, err)

		rows, cols := absorption.B.Dims()
		require.Equal(t, NumGameStates-2, rows)
		require.Equal(t, 2, cols)
		assert.Equal(t, []int{int(Hold), int(Break)}, absorption.Absorbing)

		for i := range rows {
			row := make([]float64, cols)
			for j := range cols {
				row[j] = absorption.B.At(i, j)
			}
			assert.InDelta(t, 1, floats.Sum(row), 1e-9)
		}
	}
}

func TestHoldProbability(t *testing.T) {
	game := testGame(t, 42, 42)
	hold, err := game.HoldProbability()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, hold, 1e-9, "equal players hold half of their games")

	for _, serve := range []float64{20, 58, 90, 150} {
		game := testGame(t, serve, 42)
		hold, err := game.HoldProbability()
		require.NoError(t, err)
		assert.InDelta(t, analyticHold(game.Odds.Server), hold, 1e-9)
	}

	_, ok := (&Absorption{Transient: []int{0}, Absorbing: []int{15}}).Probability(3, 15)
	assert.False(t, ok)
}

func TestGameStates(t *testing.T) {
	assert.Equal(t, "0-0", LoveAll.String())
	assert.Equal(t, "30-40", ThirtyForty.String())
	assert.Equal(t, "Hold", Hold.String())
	assert.True(t, Break.IsTerminal())
	assert.False(t, ThirtyAll.IsTerminal())
	assert.Equal(t, 17, NumGameStates)
}

func TestIterativeGame(t *testing.T) {
	e := newTestEngine(t, Iterative)

	for range 200 {
		game := testGame(t, 58, 42)
		require.NoError(t, game.Simulate(e))
		require.True(t, game.State.IsTerminal())
		assert.GreaterOrEqual(t, game.Points, 4)
		if game.State == Hold {
			assert.Same(t, game.Server, game.Winner)
		} else {
			assert.Same(t, game.Returner, game.Winner)
		}
	}
}

// A server with a point win probability of 0.9 holds in the
// closed form as often as in a point by point simulation
func TestClosedFormMatchesIterative(t *testing.T) {
	game := testGame(t, 90, 10)
	require.InDelta(t, 0.9, game.Odds.Server, 1e-12)

	closedForm, err := game.HoldProbability()
	require.NoError(t, err)

	e := newTestEngine(t, Iterative)
	const runs = 10000
	holds := 0
	for range runs {
		g := testGame(t, 90, 10)
		require.NoError(t, g.Simulate(e))
		if g.State == Hold {
			holds += 1
		}
	}

	assert.InDelta(t, closedForm, float64(holds)/runs, 0.01)
}

func TestGameModelsAgree(t *testing.T) {
	const runs = 10000
	rates := make(map[GameModel]float64)

	for _, model := range []GameModel{ClosedForm, Iterative} {
		e := newTestEngine(t, model)
		holds := 0
		for range runs {
			g := testGame(t, 58, 42)
			require.NoError(t, g.Simulate(e))
			if g.State == Hold {
				holds += 1
			}
		}
		rates[model] = float64(holds) / runs
	}

	assert.InDelta(t, rates[ClosedForm], rates[Iterative], 0.03)
}

func TestSingularChain(t *testing.T) {
	// The two transient states lead into each other and never
	// reach the absorbing state
	chain := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
	})

	_, err := absorptionProbabilities(chain)
	assert.ErrorIs(t, err, ErrNumericalInstability)
}
