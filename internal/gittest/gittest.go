// Package gittest builds synthetic loose commit objects and oids for tests.
//
// Builders produce byte-exact object bodies so decoder tests can state their
// expectations against known input, without fixtures checked out of a real
// repository.
package gittest

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/lineage-sh/lineage/internal/object"
)

// CommitSpec describes a synthetic loose commit object.
type CommitSpec struct {
	// Tree is the hex tree oid. Empty omits the tree header.
	Tree string

	// Parents are hex parent oids, emitted in order.
	Parents []string

	// Author is the raw author header value.
	Author string

	// Committer is the raw committer header value. Empty omits the header.
	Committer string

	// Armor holds the physical lines of an armored signature block. Empty
	// omits the gpgsig header. Lines after the first are emitted as
	// continuation lines (leading space), including a lone space for blank
	// armor lines, matching how git folds the block.
	Armor []string

	// Message is the commit message, appended verbatim after the separator.
	Message string
}

// Bytes renders the described commit into loose object form.
func (s CommitSpec) Bytes() []byte {
	var buf bytes.Buffer
	if s.Tree != "" {
		buf.WriteString("tree " + s.Tree + "\n")
	}
	for _, p := range s.Parents {
		buf.WriteString("parent " + p + "\n")
	}
	if s.Author != "" {
		buf.WriteString("author " + s.Author + "\n")
	}
	if s.Committer != "" {
		buf.WriteString("committer " + s.Committer + "\n")
	}
	if len(s.Armor) > 0 {
		buf.WriteString("gpgsig " + s.Armor[0] + "\n")
		for _, line := range s.Armor[1:] {
			buf.WriteString(" " + line + "\n")
		}
	}
	buf.WriteString("\n")
	buf.WriteString(s.Message)
	return buf.Bytes()
}

// Armor wraps a binary signature payload in minimal ASCII armor: BEGIN line,
// blank header-fields separator, base64 payload wrapped at 64 columns, a
// checksum line, and the END line.
func Armor(payload []byte) []string {
	encoded := base64.StdEncoding.EncodeToString(payload)
	lines := []string{"-----BEGIN PGP SIGNATURE-----", ""}
	for len(encoded) > 64 {
		lines = append(lines, encoded[:64])
		encoded = encoded[64:]
	}
	lines = append(lines, encoded, "=crc0", "-----END PGP SIGNATURE-----")
	return lines
}

// Oid returns a full-width SHA-1 oid made of the repeated byte b.
func Oid(b byte) object.Oid {
	return object.Oid(bytes.Repeat([]byte{b}, 20))
}

// HexOid returns the hex form of Oid(b).
func HexOid(b byte) string {
	return strings.Repeat(hexByte(b), 20)
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}
