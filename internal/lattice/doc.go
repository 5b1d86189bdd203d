// Package lattice builds the concept lattice over a generated concept set
// and computes its structural metrics.
//
// The lattice is the Hasse diagram of the subconcept order: a directed
// covering graph whose edges run from the more specific concept (larger
// intent) to the more general one, with no transitive edges. Construction is
// the brute-force O(n^3) candidate check, acceptable under the generation
// ceiling; any replacement must produce the identical covering relation.
//
// Metrics exposed: density, join-/meet-irreducible elements, Betti numbers
// of the undirected covering graph, and the Monte-Carlo stability index.
// Stability is the only randomized computation in the repository; it takes
// an explicit rand source and never participates in verification decisions.
package lattice
