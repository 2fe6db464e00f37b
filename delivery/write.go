package delivery

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rowseal/rowseal/attest"
	"github.com/rowseal/rowseal/merkle"
)

// WriteParams configures one delivery build.
type WriteParams struct {
	// Rows is the full ordered dataset, already canonicalized to strings.
	Rows [][]string

	// DatasetPath names the source file recorded (and hashed) in the
	// manifest.
	DatasetPath string

	// OutDir receives the delivery artifacts. Created if needed.
	OutDir string

	// SampleIndices selects which rows get published inclusion proofs.
	// Out-of-range indices are skipped, matching the producer pipeline's
	// tolerance for short shards.
	SampleIndices []int

	// Signer signs the manifest and the root text. The private key is used
	// in-process only; nothing secret is written under OutDir.
	Signer ed25519.PrivateKey

	// Now overrides the manifest timestamp when non-zero (tests).
	Now int64
}

// Write builds the tree, writes the root text, sampled proof artifacts,
// manifest, detached signatures, and the public key, and returns the root's
// canonical hex.
func Write(p WriteParams) (string, error) {
	if len(p.Signer) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("delivery: signer must be a %d-byte ed25519 private key", ed25519.PrivateKeySize)
	}
	tree, err := merkle.BuildTree(p.Rows)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return "", err
	}

	rootHex := tree.RootHex()
	rootText := []byte(rootHex + "\n")
	if err := os.WriteFile(filepath.Join(p.OutDir, RootName), rootText, 0o644); err != nil {
		return "", err
	}
	// The signature covers the canonical hex string, not the file bytes;
	// a verifier trims trailing whitespace before checking.
	rootSig := attest.SignEd25519([]byte(rootHex), p.Signer)
	if err := os.WriteFile(filepath.Join(p.OutDir, RootName+SigSuffix), rootSig, 0o644); err != nil {
		return "", err
	}

	proofsDir := filepath.Join(p.OutDir, ProofsDirName)
	if err := os.MkdirAll(proofsDir, 0o755); err != nil {
		return "", err
	}
	for _, idx := range p.SampleIndices {
		if idx < 0 || idx >= tree.LeafCount() {
			continue
		}
		art, err := tree.Artifact(idx)
		if err != nil {
			return "", err
		}
		b, err := art.MarshalJSON()
		if err != nil {
			return "", err
		}
		name := fmt.Sprintf("sample_row_%d.json", idx)
		if err := os.WriteFile(filepath.Join(proofsDir, name), b, 0o644); err != nil {
			return "", err
		}
	}

	datasetSum, err := Sha256File(p.DatasetPath)
	if err != nil {
		return "", fmt.Errorf("delivery: hash dataset: %w", err)
	}
	now := p.Now
	if now == 0 {
		now = time.Now().Unix()
	}
	m := Manifest{
		DatasetFile:    filepath.Base(p.DatasetPath),
		DatasetSHA256:  datasetSum,
		MerkleRootFile: RootName,
		RowCount:       tree.LeafCount(),
		TimestampUTC:   now,
	}
	manifestBytes, err := m.Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(p.OutDir, ManifestName), manifestBytes, 0o644); err != nil {
		return "", err
	}
	manifestSig := attest.SignEd25519(manifestBytes, p.Signer)
	if err := os.WriteFile(filepath.Join(p.OutDir, ManifestName+SigSuffix), manifestSig, 0o644); err != nil {
		return "", err
	}

	pub := p.Signer.Public().(ed25519.PublicKey)
	pubPEM, err := attest.EncodePublicKeyPEM(pub)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(p.OutDir, PublicKeyName), pubPEM, 0o644); err != nil {
		return "", err
	}

	return rootHex, nil
}
