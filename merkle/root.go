package merkle

import (
	"encoding/hex"
	"strings"
)

// Canonical root text: lowercase hexadecimal, no prefix, no interior
// whitespace. This is the exact byte string that gets signed and the exact
// string a verifier recomputes; every textual crossing of a root goes
// through FormatRootHex / ParseRootHex so the two can never drift.

// FormatRootHex returns the canonical text form of a root digest.
func FormatRootHex(root []byte) string {
	return hex.EncodeToString(root)
}

// ParseRootHex parses a canonical root string. Uppercase hex is rejected:
// accepting a second spelling of the same root would let a signed root and a
// compared root differ as bytes while "matching" as values.
func ParseRootHex(s string) ([]byte, error) {
	if len(s) != 2*DigestSize {
		return nil, newError(KindRoot, "RS-ROOT-001", "root text has wrong length")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, newError(KindRoot, "RS-ROOT-002", "root text is not lowercase hex")
		}
	}
	d, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindRoot, "RS-ROOT-002", "root text is not lowercase hex", err)
	}
	return d, nil
}

// ParseRootText parses the contents of a root text file: the canonical hex
// string with at most trailing whitespace (a single trailing newline is the
// common case). Leading or interior junk is rejected.
func ParseRootText(b []byte) ([]byte, error) {
	s := strings.TrimRight(string(b), " \t\r\n")
	return ParseRootHex(s)
}
