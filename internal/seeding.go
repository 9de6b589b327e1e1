package internal

import "math/rand/v2"

const (
	SeedRandom = iota
	SeedSingle = iota
	SeedTiered = iota
)

// Shuffles the slice according to the seeding mode.
//
// SeedSingle keeps the order, SeedRandom shuffles everything and
// SeedTiered keeps the top two fixed and shuffles within the tiers
// 3-4, 5-8, 9-16 and so on.
func SeededShuffle[S ~[]E, E any](slice S, seedingMode int, rng *rand.Rand) {
	switch seedingMode {
	case SeedRandom:
		shuffle(slice, rng)
	case SeedTiered:
		tieredShuffle(slice, rng)
	}
}

func tieredShuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	for start := 2; start < len(slice); start *= 2 {
		end := min(len(slice), 2*start)
		shuffle(slice[start:end], rng)
	}
}

func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	rng.Shuffle(
		len(slice),
		func(i, j int) { slice[i], slice[j] = slice[j], slice[i] },
	)
}
