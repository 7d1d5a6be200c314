package object

import (
	"errors"
	"fmt"
)

// DecodeError represents a structural failure while decoding a commit object.
//
// Decode errors are terminal for the call: there is no partial record and no
// best-effort parse. The caller owns recovery policy.
type DecodeError struct {
	// Code identifies the error category.
	Code DecodeErrorCode

	// Message is a human-readable description.
	Message string

	// Header names the offending header key, when one is known.
	Header string

	// Err is the underlying cause (hex/base64 decode failure), if any.
	Err error
}

// DecodeErrorCode categorizes decode errors.
type DecodeErrorCode string

const (
	// CodeMalformedObject indicates the object body violates the loose commit
	// format: missing header/message separator, bad author line, duplicated
	// single-valued header, or an unparseable parent oid.
	CodeMalformedObject DecodeErrorCode = "MALFORMED_OBJECT"

	// CodeMalformedSignature indicates the embedded gpgsig block fails a
	// structural expectation (armor framing, base64, minimum length).
	CodeMalformedSignature DecodeErrorCode = "MALFORMED_SIGNATURE"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("%s: %s (header=%s)", e.Code, e.Message, e.Header)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsMalformedObject returns true if the error is a malformed-object decode
// error. Uses errors.As to handle wrapped errors.
func IsMalformedObject(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == CodeMalformedObject
	}
	return false
}

// IsMalformedSignature returns true if the error is a malformed-signature
// decode error. Uses errors.As to handle wrapped errors.
func IsMalformedSignature(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == CodeMalformedSignature
	}
	return false
}

func malformedObject(message, header string, err error) *DecodeError {
	return &DecodeError{Code: CodeMalformedObject, Message: message, Header: header, Err: err}
}

func malformedSignature(message string, err error) *DecodeError {
	return &DecodeError{Code: CodeMalformedSignature, Message: message, Header: "gpgsig", Err: err}
}
