// Package session holds the editing session for one configuration
// document: the immutable baseline, the committed working copy, and the
// per-variable draft buffers.
//
// Three document instances coexist with distinct lifecycles:
//
//   - baseline: loaded once at session start, never mutated, used only for
//     diffing.
//   - committed: the authoritative working document. Mutated only by a
//     draft's Apply or by ApplyBatch; every mutation is all-or-nothing.
//   - drafts: one scratch buffer per variable, created on first touch and
//     discarded when applied. A draft never touches committed until Apply.
//
// The session is an explicit context object passed to every operation.
// There is no global state; lifecycle is tied to the session value itself.
// Single-user, single-goroutine interaction model: no operation here is
// safe for concurrent use, and none needs to be.
//
// After each committed mutation the session notifies its Persister (the
// recovery manager) so a crash never loses more than the in-flight draft.
package session
