package internal

// A Set is a sequence of service games with alternating server.
//
// The set is won with 6 games and a lead of 2, with 7-5, or with
// the tiebreak at 6-6 which makes the final score 7-6.
type Set struct {
	// Players[0] serves the first game
	Players [2]*Player
	// Games won by Players[0] and Players[1]
	Games [2]int

	Tiebreak *Tiebreak
	Winner   *Player

	// Number of service games played, the tiebreak not included
	NumGames int
	Breaks   [2]int
}

func NewSet(server, returner *Player) *Set {
	return &Set{Players: [2]*Player{server, returner}}
}

// Returns the games won in this set by the given player
func (s *Set) GamesOf(player *Player) int {
	switch player {
	case s.Players[0]:
		return s.Games[0]
	case s.Players[1]:
		return s.Games[1]
	}
	return 0
}

// Plays the set and returns the server and returner of the first
// game of the following set. The next server is always the player
// who returned in the final game (or received first in the
// tiebreak).
func (s *Set) Simulate(e *Engine) (*Player, *Player, error) {
	server := 0

	for s.Winner == nil {
		if s.Games == [2]int{6, 6} {
			s.Tiebreak = NewTiebreak(s.Players[server], s.Players[1-server])
			if err := s.Tiebreak.Simulate(e); err != nil {
				return nil, nil, err
			}
			s.Winner = s.Tiebreak.Winner
			if s.Winner == s.Players[0] {
				s.Games[0] += 1
			} else {
				s.Games[1] += 1
			}
			server = 1 - server
			break
		}

		game, err := NewGame(s.Players[server], s.Players[1-server])
		if err != nil {
			return nil, nil, err
		}
		if err := game.Simulate(e); err != nil {
			return nil, nil, err
		}
		s.NumGames += 1

		if game.State == Hold {
			s.Games[server] += 1
		} else {
			s.Games[1-server] += 1
			s.Breaks[1-server] += 1
		}

		if winner, ok := setWinner(s.Games); ok {
			s.Winner = s.Players[winner]
		}

		server = 1 - server
	}

	return s.Players[server], s.Players[1-server], nil
}

// Checks the completed-set rule on a game score. The tiebreak
// case is handled by the caller since it needs another game type.
func setWinner(games [2]int) (int, bool) {
	a, b := games[0], games[1]
	switch {
	case a >= 6 && a-b >= 2:
		return 0, true
	case b >= 6 && b-a >= 2:
		return 1, true
	}
	return -1, false
}
