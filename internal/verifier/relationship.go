package verifier

import (
	"fmt"
	"sort"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/lattice"
)

// Relationship is a directed co-occurrence claim between two attributes.
// (A, B) and (B, A) are distinct relationships.
type Relationship struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (r Relationship) String() string {
	return fmt.Sprintf("'%s' -> '%s'", r.A, r.B)
}

// ExtractRelationships flattens a lattice into its relationship set.
//
// A concept contributes all ordered pairs over its intent when it sits
// strictly below some other concept and its extent is non-empty. The
// extent guard matters: the bottom concept of a lattice often carries
// every attribute with no witnessing object, and its pairs would claim
// co-occurrences no sentence actually contains.
//
// The result is deduplicated and sorted by (A, B).
func ExtractRelationships(l *lattice.Lattice) []Relationship {
	seen := make(map[Relationship]struct{})

	for i := 0; i < l.Len(); i++ {
		if len(l.UpperCovers(i)) == 0 {
			continue
		}
		c := l.Concept(i)
		if c.Extent.IsEmpty() {
			continue
		}
		attrs := l.Context().AttributeNames(c.Intent)
		for _, a := range attrs {
			for _, b := range attrs {
				if a == b {
					continue
				}
				seen[Relationship{A: a, B: b}] = struct{}{}
			}
		}
	}

	rels := make([]Relationship, 0, len(seen))
	for r := range seen {
		rels = append(rels, r)
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].A != rels[j].A {
			return rels[i].A < rels[j].A
		}
		return rels[i].B < rels[j].B
	})
	return rels
}
