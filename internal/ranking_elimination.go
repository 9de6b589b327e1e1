package internal

import "slices"

// Ranks the entrants of the tournament according to how far they
// reached. The players who lost out in the same round are tied on
// the same rank. Entrants who never played a match (they withdrew
// before their first match) share the last rank.
func (t *Tournament) Standings() [][]*Player {
	if t.MatchList == nil {
		return nil
	}

	ranks := make([][]*Player, 0, len(t.Rounds)+2)
	if t.Champion != nil {
		ranks = append(ranks, []*Player{t.Champion})
	}

	for _, r := range slices.Backward(t.Rounds) {
		losers := rankRound(r)
		if len(losers) > 0 {
			ranks = append(ranks, losers)
		}
	}

	ranks = append(ranks, t.Entrants)

	return RemoveDoubleRanks(ranks)
}

func rankRound(round *Round) []*Player {
	losers := make([]*Player, 0, len(round.Matches))
	for _, m := range round.Matches {
		losers = append(losers, rankMatch(m)...)
	}
	return losers
}

func rankMatch(match *Match) []*Player {
	if match.Loser != nil {
		return []*Player{match.Loser}
	}
	if match.Winner == nil {
		// Neither side could play
		return slices.Clone(match.WithdrawnPlayers)
	}
	return nil
}

func RemoveDoubleRanks(ranks [][]*Player) [][]*Player {
	found := make(map[*Player]struct{})
	cleanedRanks := make([][]*Player, 0, len(ranks))

	for _, r := range ranks {
		cleanedRank := make([]*Player, 0, len(r))
		for _, p := range r {
			if _, ok := found[p]; !ok {
				cleanedRank = append(cleanedRank, p)
				found[p] = struct{}{}
			}
		}
		if len(cleanedRank) > 0 {
			cleanedRanks = append(cleanedRanks, cleanedRank)
		}
	}
	return cleanedRanks
}
