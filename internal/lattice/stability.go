package lattice

import (
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultStabilitySamples is the default Monte-Carlo trial count for the
// stability index.
const DefaultStabilitySamples = 100

// StabilityIndex estimates how robust the concept at index i is to
// subsampling of its extent: the fraction of trials in which a random
// non-empty subset of the extent still derives exactly the concept's
// intent. A concept with empty extent has stability 1.0 by convention.
//
// The rand source is explicit so callers control determinism. The index is
// a diagnostic only; verification results never depend on it.
func (l *Lattice) StabilityIndex(i, samples int, rng *rand.Rand) float64 {
	c := l.concepts[i]
	if c.Extent.IsEmpty() {
		return 1.0
	}
	if samples <= 0 {
		samples = DefaultStabilitySamples
	}

	extent := c.Extent.ToArray()
	preserved := 0

	for trial := 0; trial < samples; trial++ {
		size := rng.Intn(len(extent)) + 1

		// Partial Fisher-Yates: the first size entries form the sample.
		perm := make([]uint32, len(extent))
		copy(perm, extent)
		for j := 0; j < size; j++ {
			k := j + rng.Intn(len(perm)-j)
			perm[j], perm[k] = perm[k], perm[j]
		}

		subset := roaring.New()
		subset.AddMany(perm[:size])

		if l.ctx.DeriveIntent(subset).Equals(c.Intent) {
			preserved++
		}
	}

	return float64(preserved) / float64(samples)
}
