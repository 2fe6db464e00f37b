// Package cidutil derives content identifiers for delivery artifacts.
//
// Every artifact a producer publishes (manifest, root text, proof records)
// gets a CIDv1 over its exact bytes, so a consumer can detect transport
// corruption before spending any time on signature or proof verification.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ArtifactCID returns the CIDv1 string (raw multicodec, sha2-256 multihash)
// for an artifact's bytes.
func ArtifactCID(data []byte) string {
	id, err := ArtifactCIDRaw(data)
	if err != nil {
		// multihash.Sum with SHA2_256 and default length cannot fail on any
		// input; keep the string form total.
		return ""
	}
	return id.String()
}

// ArtifactCIDRaw returns the CIDv1 (raw + sha2-256) derived from data.
func ArtifactCIDRaw(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Matches reports whether data hashes to id.
func Matches(id cid.Cid, data []byte) bool {
	got, err := ArtifactCIDRaw(data)
	if err != nil {
		return false
	}
	return got.Equals(id)
}
