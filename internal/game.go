package internal

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var ErrNumericalInstability = errors.New("fundamental matrix could not be computed")

// A GameState is one of the 17 score states of a service game.
// Deuce and advantage are folded into 30-30, 40-30 and 30-40
// which keeps the state space finite.
type GameState int

const (
	LoveAll GameState = iota
	FifteenLove
	ThirtyLove
	FortyLove
	LoveFifteen
	LoveThirty
	LoveForty
	FifteenAll
	ThirtyFifteen
	FortyFifteen
	FifteenThirty
	FifteenForty
	ThirtyAll
	FortyThirty
	ThirtyForty
	Hold
	Break

	NumGameStates = int(Break) + 1
)

var gameStateLabels = [NumGameStates]string{
	"0-0", "15-0", "30-0", "40-0", "0-15", "0-30", "0-40",
	"15-15", "30-15", "40-15", "15-30", "15-40",
	"30-30", "40-30", "30-40", "Hold", "Break",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= NumGameStates {
		return fmt.Sprintf("GameState(%d)", int(s))
	}
	return gameStateLabels[s]
}

func (s GameState) IsTerminal() bool {
	return s == Hold || s == Break
}

// The successor states of each score state. Index 0 is reached
// when the server wins the point, index 1 when the returner does.
// Terminal states lead to themselves.
var gameProgression = [NumGameStates][2]GameState{
	LoveAll:       {FifteenLove, LoveFifteen},
	FifteenLove:   {ThirtyLove, FifteenAll},
	ThirtyLove:    {FortyLove, ThirtyFifteen},
	FortyLove:     {Hold, FortyFifteen},
	LoveFifteen:   {FifteenAll, LoveThirty},
	LoveThirty:    {FifteenThirty, LoveForty},
	LoveForty:     {FifteenForty, Break},
	FifteenAll:    {ThirtyFifteen, FifteenThirty},
	ThirtyFifteen: {FortyFifteen, ThirtyAll},
	FortyFifteen:  {Hold, FortyThirty},
	FifteenThirty: {ThirtyAll, FifteenForty},
	FifteenForty:  {ThirtyForty, Break},
	ThirtyAll:     {FortyThirty, ThirtyForty},
	FortyThirty:   {Hold, ThirtyAll},
	ThirtyForty:   {ThirtyAll, Break},
	Hold:          {Hold, Hold},
	Break:         {Break, Break},
}

// A Game is a single service game between a server and a returner.
// The point odds are fixed when the game is created.
type Game struct {
	Server   *Player
	Returner *Player
	Odds     PointOdds

	State  GameState
	Winner *Player
	// Number of points played, zero when resolved in closed form
	Points int
}

func NewGame(server, returner *Player) (*Game, error) {
	odds, err := PointWinProbability(server, returner)
	if err != nil {
		return nil, err
	}

	game := &Game{
		Server:   server,
		Returner: returner,
		Odds:     odds,
		State:    LoveAll,
	}
	return game, nil
}

// Plays the game with the game model of the engine's rules
func (g *Game) Simulate(e *Engine) error {
	switch e.Rules.GameModel {
	case ClosedForm:
		return g.simulateClosedForm(e)
	case Iterative:
		g.simulateIterative(e)
		return nil
	}
	return ErrUnknownGameModel
}

func (g *Game) simulateClosedForm(e *Engine) error {
	hold, ok := e.holdCache[g.Odds.Server]
	if !ok {
		var err error
		hold, err = g.HoldProbability()
		if err != nil {
			return err
		}
		e.holdCache[g.Odds.Server] = hold
	}

	if e.bernoulli(hold) {
		g.resolve(Hold)
	} else {
		g.resolve(Break)
	}
	return nil
}

func (g *Game) simulateIterative(e *Engine) {
	state := LoveAll
	for !state.IsTerminal() {
		if e.bernoulli(g.Odds.Server) {
			state = gameProgression[state][0]
		} else {
			state = gameProgression[state][1]
		}
		g.Points += 1
	}
	g.resolve(state)
}

func (g *Game) resolve(state GameState) {
	g.State = state
	if state == Hold {
		g.Winner = g.Server
	} else {
		g.Winner = g.Returner
	}
}

// Returns the 17x17 transition matrix of the game's Markov chain
func (g *Game) TransitionMatrix() *mat.Dense {
	chain := mat.NewDense(NumGameStates, NumGameStates, nil)
	for from, next := range gameProgression {
		if GameState(from).IsTerminal() {
			chain.Set(from, from, 1)
			continue
		}
		chain.Set(from, int(next[0]), g.Odds.Server)
		chain.Set(from, int(next[1]), g.Odds.Returner)
	}
	return chain
}

// The absorption probabilities of a Markov chain.
//
// B has one row per transient state and one column per absorbing
// state. Transient and Absorbing map the rows and columns back to
// the state indices of the chain.
type Absorption struct {
	B         *mat.Dense
	Transient []int
	Absorbing []int
}

// Returns the probability to end in absorbing state `to` when
// starting in transient state `from`.
func (a *Absorption) Probability(from, to int) (float64, bool) {
	i := slices.Index(a.Transient, from)
	j := slices.Index(a.Absorbing, to)
	if i < 0 || j < 0 {
		return 0, false
	}
	return a.B.At(i, j), true
}

// Computes the absorption probabilities of the game's chain with
// the fundamental matrix N = (I - Q)^-1 and B = N R.
func (g *Game) AbsorptionProbabilities() (*Absorption, error) {
	return absorptionProbabilities(g.TransitionMatrix())
}

// Returns the probability that the server holds from 0-0
func (g *Game) HoldProbability() (float64, error) {
	absorption, err := g.AbsorptionProbabilities()
	if err != nil {
		return 0, err
	}
	hold, _ := absorption.Probability(int(LoveAll), int(Hold))
	return hold, nil
}

func absorptionProbabilities(chain *mat.Dense) (*Absorption, error) {
	n, _ := chain.Dims()

	transient := make([]int, 0, n)
	absorbing := make([]int, 0, 2)
	for i := range n {
		if isAbsorbingRow(chain, i) {
			absorbing = append(absorbing, i)
		} else {
			transient = append(transient, i)
		}
	}

	q := subMatrix(chain, transient, transient)
	r := subMatrix(chain, transient, absorbing)

	ones := make([]float64, len(transient))
	for i := range ones {
		ones[i] = 1
	}
	identity := mat.NewDiagDense(len(transient), ones)

	var iq mat.Dense
	iq.Sub(identity, q)

	var fundamental mat.Dense
	if err := fundamental.Inverse(&iq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumericalInstability, err)
	}

	var b mat.Dense
	b.Mul(&fundamental, r)

	absorption := &Absorption{B: &b, Transient: transient, Absorbing: absorbing}
	return absorption, nil
}

func isAbsorbingRow(chain *mat.Dense, i int) bool {
	_, n := chain.Dims()
	for j := range n {
		want := 0.0
		if i == j {
			want = 1
		}
		if chain.At(i, j) != want {
			return false
		}
	}
	return true
}

func subMatrix(m *mat.Dense, rows, cols []int) *mat.Dense {
	sub := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			sub.Set(i, j, m.At(r, c))
		}
	}
	return sub
}
