// Package fca provides the formal concept analysis core: contexts,
// concepts, and the Next-Closure concept generator.
//
// This package contains the foundational types only. All other internal
// packages import fca; fca imports nothing internal. This keeps the
// algorithmic core free of circular dependencies.
//
// Key design constraints:
//   - Contexts are immutable after construction; there is no mutation API
//   - Concepts are value types: equality is structural over (extent, intent)
//   - The attribute order driving Next-Closure is explicit configuration,
//     never ambient state
//   - Generation is strictly sequential; lectic order depends on
//     left-to-right processing of the fixed attribute order
//
// Extents and intents are roaring bitmaps over dense object/attribute
// indices. The context owns the index <-> name tables; all derivation
// operators work on bitmaps and never allocate name slices internally.
package fca
