package tests

import "math/rand"

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	// Intn returns a value in [0, n).
	Intn func(n int) int
	// Between returns a value in [lo, hi].
	Between func(lo, hi int64) int64
}

func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
		Between: func(lo, hi int64) int64 { return lo + random.Int63n(hi-lo+1) },
	}
}
