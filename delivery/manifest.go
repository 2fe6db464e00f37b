// Package delivery models the artifact bundle a producer ships: a manifest,
// the merkle root text, detached signatures, and sampled inclusion proofs.
//
// For signing and verification the manifest is an opaque byte payload; the
// typed view exists only for producing it and for operator display. The
// bytes on disk are authoritative — re-encoding a parsed manifest is never
// substituted for the signed bytes.
package delivery

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Standard artifact names inside a delivery directory.
const (
	ManifestName  = "manifest.json"
	RootName      = "merkle_root.txt"
	PublicKeyName = "ed25519_public.pem"
	ProofsDirName = "inclusion_proofs"

	// SigSuffix is appended to an artifact name for its detached signature.
	SigSuffix = ".sig"
)

// Manifest describes the delivered dataset. Field names are the wire names.
type Manifest struct {
	DatasetFile    string `json:"dataset_file"`
	DatasetSHA256  string `json:"dataset_sha256"`
	SampleFile     string `json:"sample_file,omitempty"`
	SampleSHA256   string `json:"sample_sha256,omitempty"`
	MerkleRootFile string `json:"merkle_root_file"`
	RowCount       int    `json:"row_count,omitempty"`
	TimestampUTC   int64  `json:"timestamp_utc"`
}

// Encode renders the manifest in its stored form.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// DecodeManifest parses stored manifest bytes. Verification never needs
// this; it treats the manifest as opaque.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("delivery: invalid manifest: %w", err)
	}
	return &m, nil
}

// Sha256File returns the lowercase-hex sha256 of a file's contents,
// streaming so large datasets never load into memory.
func Sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
