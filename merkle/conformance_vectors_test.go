package merkle

import (
	"encoding/hex"
	"testing"
)

// Fixed vectors pin the wire format: sha256, leaf prefix 0x00, node prefix
// 0x01, unit-separator row joining, duplicate-last-node folding. Any change
// to these constants must fail here before it reaches a producer.

const (
	vectorLeaf0 = "c7d89e6989b47da9a7b85b86a469a3a9b0daa8deaa5cfa8cd7a10756f6a590d1" // H(0x00 || "addr1\x1f100")
	vectorLeaf1 = "8c4f03fd8528183b2190126cbe77b09767ade0b7abf9804be9adc0071ca21ebc" // H(0x00 || "addr2\x1f200")
	vectorLeaf2 = "bbc765aeb25bebfff6d28bd170c3ec7682afd9c99eb022fd6e6a77a8cc5df172" // H(0x00 || "addr3\x1f300")
	vectorRoot2 = "0163452e347948d1485a8e68c45adde8f897c6a753e3b07a4a39d32b7fcaf896" // H(0x01 || leaf0 || leaf1)
	vectorRoot3 = "55b8b6ec859c814b342bd8c3ca1a7b0af320f032556bd3eadfea3587d90a1f05" // three-row tree
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad vector %q: %v", s, err)
	}
	return b
}

func TestVectors_LeafHash(t *testing.T) {
	leaf, err := LeafHashRow([]string{"addr1", "100"})
	if err != nil {
		t.Fatalf("LeafHashRow: %v", err)
	}
	if got := hex.EncodeToString(leaf); got != vectorLeaf0 {
		t.Fatalf("leaf0 = %s, want %s", got, vectorLeaf0)
	}
}

func TestVectors_TwoRowRoot(t *testing.T) {
	tree, err := BuildTree([][]string{{"addr1", "100"}, {"addr2", "200"}})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if got := tree.RootHex(); got != vectorRoot2 {
		t.Fatalf("root = %s, want %s", got, vectorRoot2)
	}
	if got := hex.EncodeToString(NodeHash(mustHex(t, vectorLeaf0), mustHex(t, vectorLeaf1))); got != vectorRoot2 {
		t.Fatalf("NodeHash = %s, want %s", got, vectorRoot2)
	}
}

func TestVectors_ThreeRowRootWithDuplication(t *testing.T) {
	tree, err := BuildTree([][]string{{"addr1", "100"}, {"addr2", "200"}, {"addr3", "300"}})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if got := tree.RootHex(); got != vectorRoot3 {
		t.Fatalf("root = %s, want %s", got, vectorRoot3)
	}
}

func TestVectors_ProofAgainstKnownRoot(t *testing.T) {
	// Spec scenario A: proving row 0 of the two-row tree needs only leaf1
	// as a right sibling.
	root := mustHex(t, vectorRoot2)
	steps := []ProofStep{{Sibling: mustHex(t, vectorLeaf1), SiblingIsLeft: false}}
	rep, err := VerifyProof([]string{"addr1", "100"}, root, steps)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if !rep.Match {
		t.Fatalf("proof did not verify: computed %s expected %s", rep.ComputedHex, rep.ExpectedHex)
	}
}
