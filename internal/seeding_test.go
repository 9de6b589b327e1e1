package internal

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeding(t *testing.T) {
	original := make([]int, 15)
	for i := range original {
		original[i] = i
	}

	seedShuffled := slices.Clone(original)

	SeededShuffle(seedShuffled, SeedSingle, rand.New(rand.NewPCG(42, 0)))
	require.Equal(t, original, seedShuffled, "seeds were shuffled with SeedSingle mode")

	swaps := 0
	for seed := range 30 {
		seedShuffled = slices.Clone(original)
		SeededShuffle(seedShuffled, SeedRandom, rand.New(rand.NewPCG(uint64(seed), 0)))

		require.ElementsMatch(t, original, seedShuffled, "the shuffle removed elements")

		if seedShuffled[0] != original[0] {
			swaps += 1
		}
	}
	assert.NotZero(t, swaps, "the shuffle never swapped the elements")

	tierSwaps := 0
	for seed := range 30 {
		seedShuffled = slices.Clone(original)
		SeededShuffle(seedShuffled, SeedTiered, rand.New(rand.NewPCG(uint64(seed), 0)))

		require.Equal(t, original[:2], seedShuffled[:2], "the first two seeds should stay fixed in their tier")
		require.ElementsMatch(t, original[2:4], seedShuffled[2:4], "elements were shuffled out of their tier")
		require.ElementsMatch(t, original[4:8], seedShuffled[4:8], "elements were shuffled out of their tier")
		require.ElementsMatch(t, original[8:15], seedShuffled[8:15], "elements were shuffled out of their tier")

		if seedShuffled[14] != original[14] {
			tierSwaps += 1
		}
	}
	assert.NotZero(t, tierSwaps, "the last element of a partial tier was never shuffled")
}

func TestSeedArrangement(t *testing.T) {
	matchups := arrangeSeeds(3)
	require.Len(t, matchups, 4)

	pairs := make([][2]int, 0, len(matchups))
	for _, m := range matchups {
		pairs = append(pairs, [2]int{m.seed1, m.seed2})
	}
	assert.Equal(t, [][2]int{{0, 7}, {3, 4}, {1, 6}, {2, 5}}, pairs)

	// The top two seeds are in different halves
	firstHalf := []int{pairs[0][0], pairs[0][1], pairs[1][0], pairs[1][1]}
	assert.Contains(t, firstHalf, 0)
	assert.NotContains(t, firstHalf, 1)
}
