package merkle

// Tree is an immutable binary hash tree over an ordered row set.
//
// Shape is fully determined by the leaf count. When a level has an odd node
// count, the last node is paired with itself: parent = NodeHash(x, x). The
// inclusion proof for such a node carries the node's own digest as the
// sibling, with SiblingIsLeft=false, so a verifier folds it identically to a
// real sibling. This duplication rule is part of the wire format; builder and
// verifier must agree on it or every proof fails.
type Tree struct {
	// levels[0] is the leaf level; levels[len-1] holds the single root.
	levels [][][]byte
	rows   [][]string
}

// BuildTree computes the tree for an ordered, non-empty row sequence.
//
// It is a pure function of rows: identical input yields byte-identical root
// and proofs. The row slices are retained for proof generation; callers must
// not mutate them afterwards.
func BuildTree(rows [][]string) (*Tree, error) {
	if len(rows) == 0 {
		return nil, newError(KindTree, "RS-TREE-001", "empty row set: no root is defined for zero rows")
	}

	leaves := make([][]byte, len(rows))
	for i, row := range rows {
		d, err := LeafHashRow(row)
		if err != nil {
			return nil, wrapError(KindTree, "RS-TREE-002", "row cannot be canonicalized", err)
		}
		leaves[i] = d
	}

	levels := [][][]byte{leaves}
	for len(levels[len(levels)-1]) > 1 {
		cur := levels[len(levels)-1]
		next := make([][]byte, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			left := cur[i]
			right := left
			if i+1 < len(cur) {
				right = cur[i+1]
			}
			next = append(next, NodeHash(left, right))
		}
		levels = append(levels, next)
	}

	return &Tree{levels: levels, rows: rows}, nil
}

// LeafCount returns the number of rows in the tree.
func (t *Tree) LeafCount() int { return len(t.levels[0]) }

// Root returns a copy of the root digest.
func (t *Tree) Root() []byte {
	top := t.levels[len(t.levels)-1][0]
	return append([]byte(nil), top...)
}

// RootHex returns the root in its canonical text form (§RootText).
func (t *Tree) RootHex() string { return FormatRootHex(t.levels[len(t.levels)-1][0]) }

// Leaf returns a copy of the leaf digest at index i.
func (t *Tree) Leaf(i int) ([]byte, error) {
	if i < 0 || i >= t.LeafCount() {
		return nil, newError(KindTree, "RS-TREE-003", "leaf index out of range")
	}
	return append([]byte(nil), t.levels[0][i]...), nil
}

// Proof returns the sibling path for the row at index i, ordered leaf to
// root. For a single-row tree the path is empty: the root is the leaf digest.
func (t *Tree) Proof(i int) ([]ProofStep, error) {
	if i < 0 || i >= t.LeafCount() {
		return nil, newError(KindTree, "RS-TREE-003", "leaf index out of range")
	}
	steps := make([]ProofStep, 0, len(t.levels)-1)
	cur := i
	for _, level := range t.levels[:len(t.levels)-1] {
		pair := cur ^ 1
		if pair < len(level) {
			steps = append(steps, ProofStep{
				Sibling:       append([]byte(nil), level[pair]...),
				SiblingIsLeft: pair%2 == 0,
			})
		} else {
			// Unpaired node at an odd level: its parent hashed it with itself.
			steps = append(steps, ProofStep{
				Sibling:       append([]byte(nil), level[cur]...),
				SiblingIsLeft: false,
			})
		}
		cur /= 2
	}
	return steps, nil
}

// Artifact returns the serializable inclusion-proof record for row i.
func (t *Tree) Artifact(i int) (*Artifact, error) {
	steps, err := t.Proof(i)
	if err != nil {
		return nil, err
	}
	return &Artifact{Index: i, Row: t.rows[i], Steps: steps}, nil
}
