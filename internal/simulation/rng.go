package simulation

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Rand is a uniform random source producing values in [0, 1). Every sampler
// and simulator in this package receives its generator explicitly; there is
// no package-level default. A Rand instance is owned by the call that created
// it and must not be shared across concurrent simulation runs, since
// reproducibility depends on a strictly ordered sequence of draws.
type Rand func() float64

// NewSeededRand returns a deterministic Rand derived from the given seed
// string. The same seed produces the same sequence on every run and platform,
// which is what makes simulation output auditable.
func NewSeededRand(seed string) Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	src := rand.New(rand.NewSource(int64(h.Sum64())))
	return src.Float64
}

// NewRand returns a non-deterministic Rand for callers that do not need
// reproducible output.
func NewRand() Rand {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return src.Float64
}
