package internal

// A Tiebreak is played at 6-6 in a set. It is won by the first
// player to reach 7 points with a lead of at least 2.
//
// The first player serves one point, after that the serve
// changes every two points.
type Tiebreak struct {
	// First serves the first point
	First  *Player
	Second *Player

	// Points of First and Second
	Score [2]int

	Winner *Player
	// Forced is true when the point cap was reached and a coin
	// flip decided the tiebreak instead of the 7-by-2 rule
	Forced bool
}

func NewTiebreak(first, second *Player) *Tiebreak {
	return &Tiebreak{First: first, Second: second}
}

// Returns the index (0 for First, 1 for Second) of the player
// who serves the point with the given zero-based number.
func tiebreakServer(point int) int {
	if point == 0 {
		return 0
	}
	if ((point-1)/2)%2 == 0 {
		return 1
	}
	return 0
}

// Plays points until the tiebreak is decided.
//
// When either score reaches the engine's tiebreak point cap
// without a winner the tiebreak ends with a coin flip and
// Forced is set.
func (t *Tiebreak) Simulate(e *Engine) error {
	players := [2]*Player{t.First, t.Second}

	odds := [2]PointOdds{}
	for i := range 2 {
		o, err := PointWinProbability(players[i], players[1-i])
		if err != nil {
			return err
		}
		odds[i] = o
	}

	for point := 0; ; point++ {
		server := tiebreakServer(point)
		if e.bernoulli(odds[server].Server) {
			t.Score[server] += 1
		} else {
			t.Score[1-server] += 1
		}

		if winner, ok := tiebreakWinner(t.Score); ok {
			t.Winner = players[winner]
			return nil
		}

		if max(t.Score[0], t.Score[1]) >= e.Rules.TiebreakPointCap {
			t.Forced = true
			if e.coinFlip() {
				t.Winner = t.First
			} else {
				t.Winner = t.Second
			}
			return nil
		}
	}
}

func tiebreakWinner(score [2]int) (int, bool) {
	a, b := score[0], score[1]
	if max(a, b) < 7 || abs(a-b) < 2 {
		return -1, false
	}
	if a > b {
		return 0, true
	}
	return 1, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
