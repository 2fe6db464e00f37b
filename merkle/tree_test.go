package merkle

import (
	"bytes"
	"fmt"
	"testing"
)

func buildRows(t *testing.T, n int) [][]string {
	t.Helper()
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("addr%d", i), fmt.Sprintf("%d00", i+1)}
	}
	return rows
}

func TestBuildTree_RejectsEmpty(t *testing.T) {
	_, err := BuildTree(nil)
	if err == nil {
		t.Fatalf("expected error for empty row set")
	}
	if !IsKind(err, KindTree) || RuleID(err) != "RS-TREE-001" {
		t.Fatalf("unexpected error %v (rule %q)", err, RuleID(err))
	}
}

func TestBuildTree_SingleRowRootIsLeaf(t *testing.T) {
	rows := [][]string{{"addr1", "100"}}
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	leaf, err := LeafHashRow(rows[0])
	if err != nil {
		t.Fatalf("LeafHashRow: %v", err)
	}
	if !bytes.Equal(tree.Root(), leaf) {
		t.Fatalf("single-row root must equal the leaf digest")
	}
	steps, err := tree.Proof(0)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if len(steps) != 0 {
		t.Fatalf("single-row proof path must be empty, got %d steps", len(steps))
	}
}

func TestBuildTree_RoundTripAllIndices(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 33} {
		rows := buildRows(t, n)
		tree, err := BuildTree(rows)
		if err != nil {
			t.Fatalf("n=%d BuildTree: %v", n, err)
		}
		root := tree.Root()
		for i := 0; i < n; i++ {
			steps, err := tree.Proof(i)
			if err != nil {
				t.Fatalf("n=%d Proof(%d): %v", n, i, err)
			}
			rep, err := VerifyProof(rows[i], root, steps)
			if err != nil {
				t.Fatalf("n=%d VerifyProof(%d): %v", n, i, err)
			}
			if !rep.Match {
				t.Fatalf("n=%d row %d: proof did not verify\ncomputed %s\nexpected %s",
					n, i, rep.ComputedHex, rep.ExpectedHex)
			}
		}
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	rows := buildRows(t, 11)
	a, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	b, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if a.RootHex() != b.RootHex() {
		t.Fatalf("roots differ across identical builds")
	}
	for i := range rows {
		pa, _ := a.Artifact(i)
		pb, _ := b.Artifact(i)
		ja, err := pa.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON: %v", err)
		}
		jb, err := pb.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON: %v", err)
		}
		if !bytes.Equal(ja, jb) {
			t.Fatalf("proof %d differs across identical builds", i)
		}
	}
}

func TestBuildTree_OrderSensitive(t *testing.T) {
	rows := buildRows(t, 6)
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	swapped := make([][]string, len(rows))
	copy(swapped, rows)
	swapped[1], swapped[4] = swapped[4], swapped[1]
	other, err := BuildTree(swapped)
	if err != nil {
		t.Fatalf("BuildTree swapped: %v", err)
	}
	if tree.RootHex() == other.RootHex() {
		t.Fatalf("permuting rows did not change the root")
	}
}

func TestBuildTree_RowChangeChangesRoot(t *testing.T) {
	rows := buildRows(t, 5)
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	tampered := buildRows(t, 5)
	tampered[2][1] = tampered[2][1] + "0"
	other, err := BuildTree(tampered)
	if err != nil {
		t.Fatalf("BuildTree tampered: %v", err)
	}
	if tree.RootHex() == other.RootHex() {
		t.Fatalf("changing a row did not change the root")
	}
}

func TestBuildTree_OddLevelDuplicatesLastNode(t *testing.T) {
	// With three rows the second level is [H(l0,l1), H(l2,l2)]: the
	// unpaired leaf hashes with itself, and its proof carries its own
	// digest as the sibling.
	rows := buildRows(t, 3)
	tree, err := BuildTree(rows)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	l2, err := LeafHashRow(rows[2])
	if err != nil {
		t.Fatalf("LeafHashRow: %v", err)
	}
	steps, err := tree.Proof(2)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if !bytes.Equal(steps[0].Sibling, l2) || steps[0].SiblingIsLeft {
		t.Fatalf("unpaired leaf must carry itself as a right-folded sibling")
	}
}

func TestTree_ProofIndexOutOfRange(t *testing.T) {
	tree, err := BuildTree(buildRows(t, 4))
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	for _, idx := range []int{-1, 4, 100} {
		if _, err := tree.Proof(idx); err == nil {
			t.Errorf("Proof(%d): expected error", idx)
		}
	}
}

func TestBuildTree_RejectsUncanonicalizableRow(t *testing.T) {
	_, err := BuildTree([][]string{{"ok"}, {"bad\x1ffield"}})
	if err == nil {
		t.Fatalf("expected error for row containing separator")
	}
	if !IsKind(err, KindTree) {
		t.Fatalf("expected Tree kind, got %v", err)
	}
}
