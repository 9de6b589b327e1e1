package internal

import "slices"

type MatchMetrics struct {
	NumMatches, Wins, Losses      int
	NumSets, SetWins, SetLosses   int
	GameWins, GameLosses          int
	Tiebreaks, TiebreakWins       int
	Breaks                        int
	WalkoverWins, WalkoverLosses  int
	SetDifference, GameDifference int
}

func (m *MatchMetrics) UpdateDifferences() {
	m.SetDifference = m.SetWins - m.SetLosses
	m.GameDifference = m.GameWins - m.GameLosses
}

// Adds the counts of other to m
func (m *MatchMetrics) Add(other *MatchMetrics) {
	m.NumMatches += other.NumMatches
	m.Wins += other.Wins
	m.Losses += other.Losses
	m.NumSets += other.NumSets
	m.SetWins += other.SetWins
	m.SetLosses += other.SetLosses
	m.GameWins += other.GameWins
	m.GameLosses += other.GameLosses
	m.Tiebreaks += other.Tiebreaks
	m.TiebreakWins += other.TiebreakWins
	m.Breaks += other.Breaks
	m.WalkoverWins += other.WalkoverWins
	m.WalkoverLosses += other.WalkoverLosses
	m.UpdateDifferences()
}

// Creates a MatchMetrics struct for each player in the matches.
// If the players slice is not nil/empty only the matches where both
// opponents are in the slice are counted.
func CreateMetrics(matches []*Match, players []*Player) map[*Player]*MatchMetrics {
	metrics := make(map[*Player]*MatchMetrics)

	for _, m := range matches {
		extractMatchMetrics(m, players, metrics)
	}

	for _, m := range metrics {
		m.UpdateDifferences()
	}

	return metrics
}

func extractMatchMetrics(
	match *Match,
	players []*Player,
	metrics map[*Player]*MatchMetrics,
) {
	if !match.Decided() || match.Winner == nil {
		return
	}

	winner := match.Winner
	loser := match.Loser

	doCountWinner := len(players) == 0 || slices.Contains(players, winner)
	doCountLoser := loser == nil || len(players) == 0 || slices.Contains(players, loser)
	if !doCountWinner || !doCountLoser {
		return
	}

	mw := metricsOf(metrics, winner)

	if match.IsWalkover() {
		mw.WalkoverWins += 1
		if loser != nil {
			metricsOf(metrics, loser).WalkoverLosses += 1
		}
		return
	}

	ml := metricsOf(metrics, loser)

	mw.NumMatches += 1
	ml.NumMatches += 1
	mw.Wins += 1
	ml.Losses += 1

	for _, set := range match.Sets {
		mw.NumSets += 1
		ml.NumSets += 1

		gamesW := set.GamesOf(winner)
		gamesL := set.GamesOf(loser)
		mw.GameWins += gamesW
		mw.GameLosses += gamesL
		ml.GameWins += gamesL
		ml.GameLosses += gamesW

		if set.Winner == winner {
			mw.SetWins += 1
			ml.SetLosses += 1
		} else {
			ml.SetWins += 1
			mw.SetLosses += 1
		}

		for i, p := range set.Players {
			metricsOf(metrics, p).Breaks += set.Breaks[i]
		}

		if set.Tiebreak != nil {
			mw.Tiebreaks += 1
			ml.Tiebreaks += 1
			metricsOf(metrics, set.Tiebreak.Winner).TiebreakWins += 1
		}
	}
}

func metricsOf(metrics map[*Player]*MatchMetrics, player *Player) *MatchMetrics {
	m, ok := metrics[player]
	if !ok {
		m = &MatchMetrics{}
		metrics[player] = m
	}
	return m
}

// Adds the metrics of the match to the career stats of its players
func recordMatch(match *Match) {
	metrics := CreateMetrics([]*Match{match}, nil)
	for player, m := range metrics {
		player.Stats.Add(m)
	}
}

// Returns the metrics of every entrant over this tournament
func (t *Tournament) Metrics() map[*Player]*MatchMetrics {
	var matches []*Match
	if t.MatchList != nil {
		matches = t.Matches
	}
	metrics := CreateMetrics(matches, t.Entrants)
	for _, p := range t.Entrants {
		metricsOf(metrics, p)
	}
	return metrics
}
