package merkle

import "crypto/sha256"

// DigestSize is the byte length of every leaf, node, and root digest.
const DigestSize = sha256.Size

// Domain-separation prefixes. A leaf digest and an internal-node digest over
// the same bytes must never collide, so each role hashes under its own fixed
// prefix byte. These constants are part of the wire format shared by the
// producer and every verifier; changing either invalidates all issued proofs.
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// LeafHash returns sha256(0x00 || rowBytes).
func LeafHash(rowBytes []byte) []byte {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(rowBytes)
	return h.Sum(nil)
}

// NodeHash returns sha256(0x01 || left || right).
func NodeHash(left, right []byte) []byte {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// LeafHashRow canonicalizes row and returns its leaf digest.
func LeafHashRow(row []string) ([]byte, error) {
	b, err := CanonicalRowBytes(row)
	if err != nil {
		return nil, err
	}
	return LeafHash(b), nil
}
