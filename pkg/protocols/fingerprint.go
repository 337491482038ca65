package protocols

import (
	"fmt"
	"iter"

	"github.com/zeebo/xxh3"
)

// Fingerprint computes a digest over all records of seq, in order. Two walks over an
// unchanged database yield the same fingerprint
func Fingerprint(seq iter.Seq[*Record]) uint64 {
	h := xxh3.New()
	for r := range seq {
		_, _ = h.WriteString(r.String())
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

// FormatFingerprint renders a fingerprint as fixed-width hex string
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
