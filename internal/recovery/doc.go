// Package recovery owns the crash-recovery persistence cycle for an
// editing session: the snapshot written after every committed mutation, the
// resume-or-discard decision at session start, and the final timestamped
// artifact.
//
// # State machine
//
// A manager starts in StateNoSnapshot or StatePromptPending depending on
// whether a snapshot file exists:
//
//	NoSnapshot ──────────────► Fresh   (seed from the baseline file)
//	PromptPending ─ resume ──► Resumed (committed from snapshot,
//	                                    baseline reloaded from file)
//	PromptPending ─ discard ─► Fresh   (snapshot deleted, seed from file)
//
// While PromptPending, the session must not proceed: the surrounding
// presentation layer resolves the choice with exactly one call to Resume or
// Discard. The manager itself never blocks.
//
// A snapshot that exists but fails to decode is deleted and treated as
// absent. Corruption is recovered automatically, never a hard failure.
//
// From the terminal states, Persist overwrites the snapshot after every
// mutation and CommitFinal writes the timestamped artifact, deleting the
// snapshot only after the artifact write succeeds. A failed final write
// leaves the snapshot intact so no data is lost.
//
// The model assumes exactly one active session per snapshot path. Two
// processes racing on the same directory are out of scope.
package recovery
