// Package merkle builds and verifies binary hash trees over ordered tabular
// rows.
//
// The producer canonicalizes each row to bytes, hashes it into a
// domain-separated leaf, and folds leaves pairwise into a single root. Any
// consumer holding the root can check that one row belongs to the published
// dataset from the row and its sibling path alone, without the rest of the
// data.
//
// Everything here is a pure function of its inputs: no I/O, no shared state,
// no retries. Malformed inputs are rejected outright; a well-formed proof
// that does not reproduce the root is reported as a mismatch, never an
// error. Callers need that distinction to tell tampering from misuse.
package merkle
