// Package keys provides the local signer-key helpers used by the rowseal
// producer tooling.
//
// Stable:
//   - Pure, deterministic primitives for signer-key formatting and
//     purpose-seed derivation.
//
// Experimental:
//   - Filesystem-backed key storage (KeyStore and related functions). These
//     are local-first conveniences for producers; key custody policy is out
//     of scope for the verification core.
package keys
