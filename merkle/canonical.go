package merkle

import (
	"strconv"
	"strings"
)

// FieldSeparator joins canonical row fields. It is the ASCII unit separator,
// reserved for this purpose: no field value may contain it.
const FieldSeparator = 0x1f

// CanonicalRowBytes is the single mandatory canonicalization choke point for
// rows. All leaf hashing, proof generation, and proof verification MUST pass
// through it.
//
// Fields are joined with FieldSeparator and encoded as UTF-8 as stored in the
// row. The encoding is byte-exact and platform-independent: the same row
// always yields the same bytes. A field containing FieldSeparator is rejected
// rather than escaped so that encoded bytes decode to exactly one row.
func CanonicalRowBytes(row []string) ([]byte, error) {
	n := 0
	for i, f := range row {
		if strings.IndexByte(f, FieldSeparator) >= 0 {
			return nil, newError(KindCanonical, "RS-CANON-001", "row field contains reserved separator byte 0x1f")
		}
		n += len(f)
		if i > 0 {
			n++
		}
	}
	out := make([]byte, 0, n)
	for i, f := range row {
		if i > 0 {
			out = append(out, FieldSeparator)
		}
		out = append(out, f...)
	}
	return out, nil
}

// CanonicalNumber renders a numeric field deterministically.
//
// It uses the shortest decimal representation that round-trips to the same
// float64 ('f' format, no exponent), with no locale influence. Producers that
// carry numeric columns must render them through this function before a row
// enters a tree.
func CanonicalNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CanonicalInt renders an integer field deterministically (base 10, no
// grouping, ASCII minus).
func CanonicalInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
