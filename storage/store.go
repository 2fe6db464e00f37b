// Package storage defines the content-addressed archive for delivery
// artifacts.
//
// Producers push the manifest, root text, and proof records after a build;
// consumers fetch them by CID before verifying. The store is deliberately
// dumb: it neither signs nor verifies, it only guarantees that what comes
// out is byte-identical to what the CID names.
package storage

import "github.com/ipfs/go-cid"

// Store is a minimal content-addressed artifact store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored artifacts MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type Store interface {
	Put(data []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
