package merkle

import "bytes"

// Report carries the audit record of one proof verification. Both digests
// are reported regardless of outcome; neither is secret, and showing the
// recomputed value lets an operator distinguish a tampered proof from a
// stale root file.
type Report struct {
	Match       bool
	ComputedHex string
	ExpectedHex string
}

// VerifyProof recomputes the root from a row and its sibling path and
// compares it to the expected root.
//
// A malformed input (uncanonicalizable row, wrong digest length) returns a
// non-nil error and a zero Report. A well-formed but mismatching proof
// returns Match=false with a nil error; the two outcomes are distinct by
// construction. Comparison is exact byte equality over full digests — no
// prefix acceptance.
func VerifyProof(row []string, root []byte, steps []ProofStep) (Report, error) {
	leaf, err := LeafHashRow(row)
	if err != nil {
		return Report{}, err
	}
	return VerifyLeafProof(leaf, root, steps)
}

// VerifyLeafProof is VerifyProof for a pre-hashed leaf digest.
func VerifyLeafProof(leaf, root []byte, steps []ProofStep) (Report, error) {
	if len(leaf) != DigestSize {
		return Report{}, newError(KindProof, "RS-PROOF-006", "leaf digest has wrong length")
	}
	if len(root) != DigestSize {
		return Report{}, newError(KindProof, "RS-PROOF-007", "root digest has wrong length")
	}
	cur := leaf
	for _, s := range steps {
		if len(s.Sibling) != DigestSize {
			return Report{}, newError(KindProof, "RS-PROOF-004", "sibling digest has wrong length")
		}
		if s.SiblingIsLeft {
			cur = NodeHash(s.Sibling, cur)
		} else {
			cur = NodeHash(cur, s.Sibling)
		}
	}
	return Report{
		Match:       bytes.Equal(cur, root),
		ComputedHex: FormatRootHex(cur),
		ExpectedHex: FormatRootHex(root),
	}, nil
}

// VerifyArtifact verifies a parsed proof artifact against a root digest.
func VerifyArtifact(a *Artifact, root []byte) (Report, error) {
	if a == nil {
		return Report{}, newError(KindProof, "RS-PROOF-008", "nil proof artifact")
	}
	return VerifyProof(a.Row, root, a.Steps)
}
