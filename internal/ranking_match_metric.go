package internal

import (
	"cmp"
	"slices"
)

// Standings where the players who went out in the same round are
// ordered by their performance in the tournament.
//
// A tie is broken in this order:
//   - Who won more sets than they lost
//   - Who won more games than they lost
//   - Who broke serve more often
//
// Players that are equal in all of them stay tied.
func (t *Tournament) TieBrokenStandings() [][]*Player {
	standings := t.Standings()
	if standings == nil {
		return nil
	}

	metrics := t.Metrics()

	broken := make([][]*Player, 0, len(standings)+8)
	for _, tie := range standings {
		broken = append(broken, breakTie(metrics, tie, tieBreakers)...)
	}
	return broken
}

var tieBreakers = []func(m *MatchMetrics) int{
	func(m *MatchMetrics) int { return m.SetDifference },
	func(m *MatchMetrics) int { return m.GameDifference },
	func(m *MatchMetrics) int { return m.Breaks },
}

// Splits the tie with the first metric and recursively breaks the
// emerging sub-ties with the remaining metrics.
//
// The returned list is descending in rank and each nested list is a rank
// of players. More than one player in a rank means the tie could not be fully
// broken.
func breakTie(
	metrics map[*Player]*MatchMetrics,
	tie []*Player,
	breakers []func(m *MatchMetrics) int,
) [][]*Player {
	if len(tie) < 2 || len(breakers) == 0 {
		return [][]*Player{tie}
	}

	sorted := sortByMetric(tie, metrics, breakers[0])

	subTieBroken := make([][]*Player, 0, len(sorted))
	for _, subTie := range sorted {
		subTieBroken = append(subTieBroken, breakTie(metrics, subTie, breakers[1:])...)
	}
	return subTieBroken
}

// Sorts the players in descending buckets of one of the metrics returned by the getter.
// The order of the players inside a bucket is kept.
func sortByMetric(players []*Player, metrics map[*Player]*MatchMetrics, getter func(m *MatchMetrics) int) [][]*Player {
	buckets := make(map[int][]*Player)

	for _, p := range players {
		metric := 0
		if m, ok := metrics[p]; ok {
			metric = getter(m)
		}
		buckets[metric] = append(buckets[metric], p)
	}

	sortedMetrics := make([]int, 0, len(buckets))
	for k := range buckets {
		sortedMetrics = append(sortedMetrics, k)
	}
	slices.SortFunc(sortedMetrics, func(a, b int) int { return cmp.Compare(b, a) })

	sortedPlayers := make([][]*Player, 0, len(sortedMetrics))
	for _, v := range sortedMetrics {
		sortedPlayers = append(sortedPlayers, buckets[v])
	}

	return sortedPlayers
}
