package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// HashAlgorithm selects the object id width.
type HashAlgorithm string

const (
	// HashSHA1 is git's classic 20-byte object format.
	HashSHA1 HashAlgorithm = "sha1"

	// HashSHA256 is the 32-byte object format.
	HashSHA256 HashAlgorithm = "sha256"
)

// Width returns the binary oid width in bytes, or 0 for an unknown algorithm.
func (a HashAlgorithm) Width() int {
	switch a {
	case HashSHA1:
		return 20
	case HashSHA256:
		return 32
	}
	return 0
}

// Oid is a fixed-width binary object identifier. Identifiers are binary at
// every boundary of this package; textual hex only appears inside header
// values and CLI flags.
type Oid []byte

// ParseOid parses a textual hex oid into binary form, validating the width
// against the given hash algorithm.
func ParseOid(s string, algo HashAlgorithm) (Oid, error) {
	width := algo.Width()
	if width == 0 {
		return nil, fmt.Errorf("parse oid: unknown hash algorithm %q", algo)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse oid %q: %w", s, err)
	}
	if len(b) != width {
		return nil, fmt.Errorf("parse oid %q: got %d bytes, want %d", s, len(b), width)
	}
	return Oid(b), nil
}

// String returns the lowercase hex form.
func (o Oid) String() string {
	return hex.EncodeToString(o)
}

// Equal reports whether two oids are byte-identical.
func (o Oid) Equal(other Oid) bool {
	return bytes.Equal(o, other)
}
