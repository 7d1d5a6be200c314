// Package object decodes raw git loose commit objects into structured records.
//
// The decoder is a pure function over the supplied byte buffer:
//   - No I/O, no shared mutable state, safe for concurrent use.
//   - Same bytes always produce the same record (content addressing relies on it).
//   - Identity (repository id, object id) is supplied by the caller; the raw
//     bytes do not self-describe their own hash.
//
// Failure taxonomy:
//   - CodeMalformedObject: missing header/message separator, author line not
//     matching its required pattern, or an ambiguous duplicated header.
//   - CodeMalformedSignature: an embedded gpgsig block that fails any structural
//     expectation. This fails the WHOLE decode; a tampered signature block must
//     not silently downgrade to "unsigned commit".
//
// Neither failure is retried here. Callers own recovery policy.
package object
