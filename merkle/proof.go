package merkle

import (
	"encoding/hex"
	"encoding/json"
)

// ProofStep is one level of an inclusion proof: the digest occupying the
// other slot of the pair, and which side it sits on.
type ProofStep struct {
	Sibling       []byte
	SiblingIsLeft bool
}

// Artifact is the distributable inclusion-proof record for one row.
//
// Wire form (JSON):
//
//	{ "index": 3, "row": ["addr1", "100"], "proof": [ { "hash": "<hex>", "is_left": false }, ... ] }
//
// Artifacts are generated once at build time and never mutated; a consumer
// can re-derive any artifact from the tree and compare byte-for-byte.
type Artifact struct {
	Index int
	Row   []string
	Steps []ProofStep
}

type wireArtifact struct {
	Index int        `json:"index"`
	Row   []string   `json:"row"`
	Proof []wireStep `json:"proof"`
}

type wireStep struct {
	Hash   string `json:"hash"`
	IsLeft bool   `json:"is_left"`
}

// MarshalJSON renders the artifact in wire form with lowercase-hex digests.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	w := wireArtifact{Index: a.Index, Row: a.Row, Proof: make([]wireStep, len(a.Steps))}
	for i, s := range a.Steps {
		w.Proof[i] = wireStep{Hash: hex.EncodeToString(s.Sibling), IsLeft: s.SiblingIsLeft}
	}
	return json.MarshalIndent(w, "", "  ")
}

// ParseArtifact decodes and validates a wire-form proof artifact.
//
// Validation is fail-closed: a digest of the wrong length, a non-hex or
// uppercase hash string, a missing row, or a negative index all reject the
// artifact before any hashing happens. There is no partial acceptance.
func ParseArtifact(data []byte) (*Artifact, error) {
	var w wireArtifact
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, wrapError(KindProof, "RS-PROOF-001", "proof artifact is not valid JSON", err)
	}
	if w.Index < 0 {
		return nil, newError(KindProof, "RS-PROOF-002", "proof artifact index is negative")
	}
	if w.Row == nil {
		return nil, newError(KindProof, "RS-PROOF-003", "proof artifact has no row")
	}
	steps := make([]ProofStep, len(w.Proof))
	for i, s := range w.Proof {
		d, err := parseDigestHex(s.Hash)
		if err != nil {
			return nil, err
		}
		steps[i] = ProofStep{Sibling: d, SiblingIsLeft: s.IsLeft}
	}
	return &Artifact{Index: w.Index, Row: w.Row, Steps: steps}, nil
}

func parseDigestHex(s string) ([]byte, error) {
	if len(s) != 2*DigestSize {
		return nil, newError(KindProof, "RS-PROOF-004", "sibling digest has wrong length")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, newError(KindProof, "RS-PROOF-005", "sibling digest is not lowercase hex")
		}
	}
	d, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindProof, "RS-PROOF-005", "sibling digest is not lowercase hex", err)
	}
	return d, nil
}
