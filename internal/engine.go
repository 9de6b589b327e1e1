package internal

import (
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// An Engine carries everything a simulation run needs besides
// the players: the random source, the rules and the logger.
//
// Every run owns its engine. Nothing in the simulation reads
// randomness from anywhere else, so a run is reproducible from
// its two seeds.
type Engine struct {
	Rng   *rand.Rand
	Rules Rules
	Log   logrus.FieldLogger

	// Hold probabilities by point win probability of the server
	holdCache map[float64]float64
}

// Creates an engine with a PCG random source. A nil logger
// discards all output.
func NewEngine(seed1, seed2 uint64, rules Rules, log logrus.FieldLogger) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = discardLogger()
	}

	engine := &Engine{
		Rng:       rand.New(rand.NewPCG(seed1, seed2)),
		Rules:     rules,
		Log:       log,
		holdCache: make(map[float64]float64),
	}
	return engine, nil
}

// Returns true with probability p
func (e *Engine) bernoulli(p float64) bool {
	return e.Rng.Float64() < p
}

func (e *Engine) coinFlip() bool {
	return e.Rng.IntN(2) == 0
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
