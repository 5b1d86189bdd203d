package fca

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Concept is a formal concept: a pair (extent, intent) where the extent is
// exactly the set of objects sharing all attributes of the intent, and the
// intent is exactly the set of attributes shared by all objects of the
// extent. Both sides are closed under the Galois connection by construction.
//
// Concepts are value types. Equality is structural over the two bitmaps;
// two concepts with identical extent and intent are the same concept no
// matter how they were produced. Use Key for map lookups: within a single
// context the intent alone identifies a concept, so the key is derived from
// the intent bitmap.
type Concept struct {
	Extent *roaring.Bitmap
	Intent *roaring.Bitmap
}

// Equal reports structural equality of both sides.
func (c Concept) Equal(other Concept) bool {
	return c.Extent.Equals(other.Extent) && c.Intent.Equals(other.Intent)
}

// Key returns a canonical string key for the concept, derived from the
// intent indices in ascending order. Suitable for map keys and duplicate
// suppression.
func (c Concept) Key() string {
	var sb strings.Builder
	it := c.Intent.Iterator()
	first := true
	for it.HasNext() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(it.Next()), 10))
	}
	return sb.String()
}

// String renders the concept with index sets only; use Context.AttributeNames
// and Context.ObjectNames for readable output.
func (c Concept) String() string {
	return fmt.Sprintf("Concept(extent=%v, intent=%v)", c.Extent.ToArray(), c.Intent.ToArray())
}

// StrictSubset reports a < b over bitmaps: every bit of a is set in b and
// b has strictly more bits. Used for the lattice order on intents.
func StrictSubset(a, b *roaring.Bitmap) bool {
	if a.GetCardinality() >= b.GetCardinality() {
		return false
	}
	return a.AndCardinality(b) == a.GetCardinality()
}
