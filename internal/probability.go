package internal

import (
	"errors"
	"fmt"
	"math"
)

var ErrDegenerateProbability = errors.New("point win probability is 0 or 1")

// The probabilities of the two outcomes of a single point
type PointOdds struct {
	Server   float64
	Returner float64
}

// Returns the probability that the server wins a point against
// the returner.
//
// The serve strength and form of the server are weighed against
// the return strength and form of the returner. The returner's
// chance is the complement.
func PointWinProbability(server, returner *Player) (PointOdds, error) {
	serve := server.ServeStrength * server.Form
	ret := returner.ReturnStrength * returner.Form

	for _, v := range []float64{serve, ret} {
		if !(v > 0) || math.IsInf(v, 0) {
			return PointOdds{}, fmt.Errorf("%v vs %v: %w", server, returner, ErrNonPositiveSkill)
		}
	}

	p := serve / (serve + ret)
	if !(p > 0 && p < 1) {
		return PointOdds{}, fmt.Errorf("%v vs %v: %w", server, returner, ErrDegenerateProbability)
	}

	return PointOdds{Server: p, Returner: 1 - p}, nil
}
