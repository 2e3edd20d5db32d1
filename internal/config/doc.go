// Package config defines the forecast-input configuration document and its
// store: a mapping from variable name to VariableSpec, loaded from and
// persisted to JSON.
//
// # Critical properties
//
// Ordered keys. The document is an ordered mapping. Decoding preserves the
// key order of the source file and encoding writes keys back in the same
// order, so a load/save cycle is byte-stable and category grouping (which
// is first-seen order over the document) is deterministic.
//
// Representation-preserving numbers. Every numeric value is held as a
// json.Number carrying its literal source text. The diff rule distinguishes
// the sequence element "0" from "0.0" while treating the scalars as equal,
// so the literal must survive decode/encode round trips.
//
// Cross-field invariant, validated on load and on every apply:
//
//   - method "single_value_fill"    <=> input is a scalar <=> quarters is null
//   - method "quarterly_values_fill" <=> input is a sequence whose length
//     equals the expanded quarter range <=> quarters is non-null
//
// Schema checking happens in two layers: an embedded CUE schema vets field
// presence and types, then Go code checks the cross-field invariant the
// schema cannot express.
package config
