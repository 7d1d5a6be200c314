package object

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CommitRecord is the structured form of a decoded loose commit object.
//
// A record is never mutated after decode: any change to its content implies a
// different commit object and hence a different identity. Identity fields
// (repository id, object id) are owned by the caller.
type CommitRecord struct {
	// ParentIDs holds the parent oids in header order. First parent is the
	// primary lineage. Empty for root commits, two or more for merges.
	ParentIDs []Oid

	// Message is everything after the first blank-line separator, as-is.
	// Internal newlines are preserved; only the separator itself is consumed.
	Message string

	AuthorName  string
	AuthorEmail string

	// CommittedAt is the UTC instant of the epoch seconds embedded in the
	// author line. The trailing timezone offset token is validated but NOT
	// applied: the epoch is already an absolute instant.
	CommittedAt time.Time

	// GPGKeyID is the 8-byte signing key id extracted from an embedded
	// gpgsig block, or nil when the commit is unsigned.
	GPGKeyID []byte
}

// Decoder decodes loose commit objects for a repository's hash algorithm.
// The zero value is not usable; use NewDecoder or the package-level
// DecodeCommit for the SHA-1 default.
type Decoder struct {
	hash HashAlgorithm
}

// NewDecoder returns a decoder that parses parent oids at the width of the
// given hash algorithm.
func NewDecoder(hash HashAlgorithm) Decoder {
	return Decoder{hash: hash}
}

// DecodeCommit decodes a raw loose commit object using the classic SHA-1
// object format.
func DecodeCommit(raw []byte) (CommitRecord, error) {
	return NewDecoder(HashSHA1).Decode(raw)
}

// authorPattern matches "<name> <<email>> <epoch> <sign><4-digit offset>".
// Name may contain spaces; email must not contain angle brackets. The offset
// group anchors the line so a truncated author value cannot match.
var authorPattern = regexp.MustCompile(`^(.*) <([^<>]*)> (\d+) ([+-]\d{4})$`)

// Decode parses the raw bytes of a loose commit object body.
//
// Pure function of its input: no I/O, linear time, identical output for
// identical bytes. See the package documentation for the failure taxonomy.
func (d Decoder) Decode(raw []byte) (CommitRecord, error) {
	headerBlock, message, err := splitAtBlankLine(raw)
	if err != nil {
		return CommitRecord{}, err
	}

	lines, err := foldHeaders(headerBlock)
	if err != nil {
		return CommitRecord{}, err
	}

	hdrs, err := accumulate(lines)
	if err != nil {
		return CommitRecord{}, err
	}

	record := CommitRecord{Message: message}

	for _, hexOid := range hdrs.parents {
		oid, err := ParseOid(hexOid, d.hash)
		if err != nil {
			return CommitRecord{}, malformedObject("unparseable parent oid", "parent", err)
		}
		record.ParentIDs = append(record.ParentIDs, oid)
	}

	author, ok := hdrs.single["author"]
	if !ok {
		return CommitRecord{}, malformedObject("missing author header", "author", nil)
	}
	name, email, committedAt, err := decodeAuthor(author)
	if err != nil {
		return CommitRecord{}, err
	}
	record.AuthorName = name
	record.AuthorEmail = email
	record.CommittedAt = committedAt

	if armor, ok := hdrs.single["gpgsig"]; ok {
		keyID, err := ExtractKeyID(armor)
		if err != nil {
			return CommitRecord{}, err
		}
		record.GPGKeyID = keyID
	}

	return record, nil
}

// splitAtBlankLine splits the buffer into the header block and the message at
// the FIRST blank-line separator. The separator is the only framing consumed.
func splitAtBlankLine(raw []byte) (headerBlock, message string, err error) {
	idx := bytes.Index(raw, []byte("\n\n"))
	if idx < 0 {
		return "", "", malformedObject("missing blank-line separator between headers and message", "", nil)
	}
	return string(raw[:idx]), string(raw[idx+2:]), nil
}

// headerLine is one logical header after continuation folding.
type headerLine struct {
	key   string
	value string
}

// foldHeaders groups physical header lines into logical ones. A physical line
// starting with a single space continues the previous header's value: the
// leading space is stripped and the remainder is newline-joined onto it.
// Grouping and merging happen before any key/value split.
func foldHeaders(block string) ([]headerLine, error) {
	if block == "" {
		return nil, nil
	}

	var logical []string
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, " ") {
			if len(logical) == 0 {
				return nil, malformedObject("continuation line without owning header", "", nil)
			}
			logical[len(logical)-1] += "\n" + line[1:]
			continue
		}
		logical = append(logical, line)
	}

	lines := make([]headerLine, 0, len(logical))
	for _, l := range logical {
		key, rest, _ := strings.Cut(l, " ")
		lines = append(lines, headerLine{
			key:   key,
			value: strings.TrimRight(rest, " \t"),
		})
	}
	return lines, nil
}

// headers is the tagged accumulation of folded header lines: parent is the
// one ordered multi-valued key, everything else is single-valued. The split
// is decided by key identity, never by inspecting values.
type headers struct {
	single  map[string]string
	parents []string
}

func accumulate(lines []headerLine) (headers, error) {
	hdrs := headers{single: make(map[string]string)}
	for _, line := range lines {
		if line.key == "parent" {
			hdrs.parents = append(hdrs.parents, line.value)
			continue
		}
		if _, dup := hdrs.single[line.key]; dup {
			return headers{}, malformedObject("duplicate single-valued header", line.key, nil)
		}
		hdrs.single[line.key] = line.value
	}
	return hdrs, nil
}

// decodeAuthor extracts the identity and timestamp from an author header
// value. There is no partial parse: a value that fails the pattern fails the
// decode.
func decodeAuthor(value string) (name, email string, committedAt time.Time, err error) {
	m := authorPattern.FindStringSubmatch(value)
	if m == nil {
		return "", "", time.Time{}, malformedObject("author line does not match required pattern", "author", nil)
	}

	epoch, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", "", time.Time{}, malformedObject("author epoch out of range", "author", err)
	}

	// m[4] is the timezone offset token. It is matched but deliberately not
	// applied: the epoch is already UTC.
	return m[1], m[2], time.Unix(epoch, 0).UTC(), nil
}
