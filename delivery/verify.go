package delivery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rowseal/rowseal/attest"
	"github.com/rowseal/rowseal/merkle"
)

// ProofVerdict is the outcome for one inclusion-proof file.
type ProofVerdict struct {
	File   string
	Report merkle.Report
}

// BundleReport is the consumer-side verdict over a full delivery directory.
//
// Valid is true only when the manifest signature, the root signature (if a
// root signature file exists), and every inclusion proof all verify. Each
// component verdict is retained so an operator can see which artifact was
// tampered with.
type BundleReport struct {
	ManifestSignatureOK bool
	RootSignatureOK     bool
	RootSigned          bool
	RootHex             string
	Proofs              []ProofVerdict
}

// Valid reports the single boolean outcome the delivery trust decision
// needs.
func (r BundleReport) Valid() bool {
	if !r.ManifestSignatureOK {
		return false
	}
	if r.RootSigned && !r.RootSignatureOK {
		return false
	}
	for _, p := range r.Proofs {
		if !p.Report.Match {
			return false
		}
	}
	return true
}

// VerifyBundle checks a delivery directory against a trusted public key.
//
// A missing or unreadable required artifact, an unparseable key, or a
// malformed proof file is an error; cryptographic mismatches are reported in
// the returned BundleReport, never as errors. Which public key to trust is
// the caller's policy.
func VerifyBundle(dir string, publicKeyPEM []byte) (BundleReport, error) {
	pub, err := attest.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return BundleReport{}, err
	}
	var report BundleReport

	manifestBytes, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return BundleReport{}, fmt.Errorf("delivery: read manifest: %w", err)
	}
	manifestSig, err := os.ReadFile(filepath.Join(dir, ManifestName+SigSuffix))
	if err != nil {
		return BundleReport{}, fmt.Errorf("delivery: read manifest signature: %w", err)
	}
	switch err := attest.Verify("ed25519", manifestBytes, manifestSig, pub); {
	case err == nil:
		report.ManifestSignatureOK = true
	case errors.Is(err, attest.ErrSignatureInvalid):
		report.ManifestSignatureOK = false
	default:
		return BundleReport{}, err
	}

	rootText, err := os.ReadFile(filepath.Join(dir, RootName))
	if err != nil {
		return BundleReport{}, fmt.Errorf("delivery: read root: %w", err)
	}
	root, err := merkle.ParseRootText(rootText)
	if err != nil {
		return BundleReport{}, err
	}
	report.RootHex = merkle.FormatRootHex(root)

	rootSig, err := os.ReadFile(filepath.Join(dir, RootName+SigSuffix))
	switch {
	case err == nil:
		report.RootSigned = true
		switch verr := attest.Verify("ed25519", []byte(report.RootHex), rootSig, pub); {
		case verr == nil:
			report.RootSignatureOK = true
		case errors.Is(verr, attest.ErrSignatureInvalid):
			report.RootSignatureOK = false
		default:
			return BundleReport{}, verr
		}
	case os.IsNotExist(err):
		// Older producers signed only the manifest.
	default:
		return BundleReport{}, fmt.Errorf("delivery: read root signature: %w", err)
	}

	proofsDir := filepath.Join(dir, ProofsDirName)
	entries, err := os.ReadDir(proofsDir)
	if err != nil && !os.IsNotExist(err) {
		return BundleReport{}, fmt.Errorf("delivery: read proofs dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(proofsDir, name))
		if err != nil {
			return BundleReport{}, fmt.Errorf("delivery: read proof %s: %w", name, err)
		}
		art, err := merkle.ParseArtifact(b)
		if err != nil {
			return BundleReport{}, err
		}
		rep, err := merkle.VerifyArtifact(art, root)
		if err != nil {
			return BundleReport{}, err
		}
		report.Proofs = append(report.Proofs, ProofVerdict{File: name, Report: rep})
	}

	return report, nil
}
