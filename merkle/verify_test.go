package merkle

import (
	"testing"
)

func twoRowFixture(t *testing.T) (rows [][]string, root []byte, steps []ProofStep) {
	t.Helper()
	rows = [][]string{{"addr1", "100"}, {"addr2", "200"}}
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	steps, err = tree.Proof(0)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	return rows, tree.Root(), steps
}

func TestVerifyProof_FlippedSideFlagFails(t *testing.T) {
	// Spec scenario B: the same sibling folded on the wrong side produces a
	// different root; the report shows both digests.
	rows, root, steps := twoRowFixture(t)
	steps[0].SiblingIsLeft = !steps[0].SiblingIsLeft
	rep, err := VerifyProof(rows[0], root, steps)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if rep.Match {
		t.Fatalf("flipped side flag must not verify")
	}
	if rep.ComputedHex == "" || rep.ExpectedHex == "" {
		t.Fatalf("report must carry both digests for audit")
	}
	if rep.ComputedHex == rep.ExpectedHex {
		t.Fatalf("computed root unexpectedly equals expected root")
	}
}

func TestVerifyProof_TamperedRowFails(t *testing.T) {
	rows, root, steps := twoRowFixture(t)
	tampered := []string{rows[0][0], "101"}
	rep, err := VerifyProof(tampered, root, steps)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if rep.Match {
		t.Fatalf("tampered row must not verify")
	}
}

func TestVerifyProof_TamperedSiblingFails(t *testing.T) {
	rows, root, steps := twoRowFixture(t)
	steps[0].Sibling[7] ^= 0x01
	rep, err := VerifyProof(rows[0], root, steps)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if rep.Match {
		t.Fatalf("tampered sibling digest must not verify")
	}
}

func TestVerifyProof_TamperedRootFails(t *testing.T) {
	rows, root, steps := twoRowFixture(t)
	root[0] ^= 0x80
	rep, err := VerifyProof(rows[0], root, steps)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if rep.Match {
		t.Fatalf("tampered root must not verify")
	}
}

func TestVerifyProof_TruncatedSiblingIsMalformed(t *testing.T) {
	rows, root, steps := twoRowFixture(t)
	steps[0].Sibling = steps[0].Sibling[:16]
	_, err := VerifyProof(rows[0], root, steps)
	if err == nil {
		t.Fatalf("truncated sibling must be rejected, not best-effort verified")
	}
	if !IsKind(err, KindProof) {
		t.Fatalf("expected Proof kind, got %v", err)
	}
}

func TestVerifyProof_WrongRootLengthIsMalformed(t *testing.T) {
	rows, _, steps := twoRowFixture(t)
	_, err := VerifyProof(rows[0], []byte{0x01, 0x02}, steps)
	if err == nil {
		t.Fatalf("short root must be rejected")
	}
}

func TestVerifyProof_EmptyPathComparesLeafToRoot(t *testing.T) {
	rows := [][]string{{"only", "row"}}
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	rep, err := VerifyProof(rows[0], tree.Root(), nil)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if !rep.Match {
		t.Fatalf("empty path must verify a single-row tree")
	}
}

func TestVerifyLeafProof_RejectsBadLeafLength(t *testing.T) {
	_, root, _ := twoRowFixture(t)
	if _, err := VerifyLeafProof([]byte("short"), root, nil); err == nil {
		t.Fatalf("short leaf must be rejected")
	}
}
