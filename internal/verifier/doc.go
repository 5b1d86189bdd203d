// Package verifier checks an answer text against its citation texts by
// comparing the concept lattices of the two.
//
// Both texts are lifted into formal contexts, their lattices are built,
// and each lattice is flattened into a set of directed attribute pairs.
// A pair present in the answer but absent from the ground truth is a
// claim with no support in the citations.
//
// Verification is deterministic: the same citations and answer always
// produce the same Result, byte for byte under canonical serialization.
package verifier
