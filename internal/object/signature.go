package object

import (
	"encoding/base64"
	"strings"
)

// Layout of the signature packet git embeds in gpgsig blocks. The fields
// preceding the issuer key id have fixed width for this packet shape, which
// pins the key id to a fixed byte offset in the decoded payload. A different
// packet version would break this silently, so extraction lives in this one
// narrowly-tested function.
const (
	keyIDOffset = 24
	keyIDLength = 8
)

// ExtractKeyID pulls the 8-byte signing key id out of an ASCII-armored
// signature block, as found in a folded gpgsig header value.
//
// The armor is unwrapped structurally:
//  1. strip the first line (BEGIN armor header) and last line (END footer),
//  2. drop everything through the first blank line (armor header fields),
//  3. drop the final remaining line (the CRC24 checksum),
//  4. concatenate what is left and base64-decode it.
//
// Any structural violation returns a MALFORMED_SIGNATURE decode error; the
// caller escalates it to a failure of the whole commit decode.
func ExtractKeyID(armor string) ([]byte, error) {
	lines := strings.Split(armor, "\n")
	if len(lines) < 2 {
		return nil, malformedSignature("armor block shorter than its framing", nil)
	}
	inner := lines[1 : len(lines)-1]

	blank := -1
	for i, line := range inner {
		if line == "" {
			blank = i
			break
		}
	}
	if blank < 0 {
		return nil, malformedSignature("armor block has no blank line after header fields", nil)
	}

	payload := inner[blank+1:]
	if len(payload) < 2 {
		return nil, malformedSignature("armor block has no payload before its checksum line", nil)
	}
	payload = payload[:len(payload)-1]

	decoded, err := base64.StdEncoding.DecodeString(strings.Join(payload, ""))
	if err != nil {
		return nil, malformedSignature("armor payload is not valid base64", err)
	}

	if len(decoded) < keyIDOffset+keyIDLength {
		return nil, malformedSignature("signature packet too short to contain a key id", nil)
	}

	keyID := make([]byte, keyIDLength)
	copy(keyID, decoded[keyIDOffset:keyIDOffset+keyIDLength])
	return keyID, nil
}
