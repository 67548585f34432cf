// Package transfer implements the RFC 2045 Content-transfer-encoding
// codecs. Every encoder here is incremental: it accepts one chunk of raw
// body bytes at a time via Encode and returns whatever encoded bytes are
// ready to emit, holding back at most a few bytes of trailing state (an
// incomplete base64 group, an unterminated quoted-printable line) until
// either the next chunk or Flush. This lets a message body be produced
// without ever materializing the whole encoded body in memory and without
// any goroutines: every codec here only performs synchronous, in-memory
// transformations.
package transfer

import "errors"

// The Content-transfer-encoding names defined by RFC 2045 section 6.1.
const (
	SevenBit        = "7bit"
	EightBit        = "8bit"
	Binary          = "binary"
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// ErrUnknownEncoding is returned by NewEncoder for a Content-transfer-encoding
// name this package does not implement.
var ErrUnknownEncoding = errors.New("transfer: unknown content-transfer-encoding")

// ErrBodyViolatesEncoding is returned by an Encoder's Encode method when the
// raw bytes given are not representable in the target encoding without
// transformation (for example, a byte with the high bit set under 7bit, or
// a line of unencoded text longer than RFC 5322's 998-octet limit), and by
// Flush when the body ends in a bare CR under 7bit or 8bit.
var ErrBodyViolatesEncoding = errors.New("transfer: body violates content-transfer-encoding")

// Encoder incrementally encodes raw body bytes into their wire form for a
// particular Content-transfer-encoding.
type Encoder interface {
	// Encode transforms the next chunk of raw bytes, returning whatever
	// encoded bytes are ready to emit. It may hold back trailing state
	// between calls.
	Encode(chunk []byte) ([]byte, error)

	// Flush returns any bytes held back by previous Encode calls and
	// finalizes the encoding. It must be called exactly once, after the
	// last call to Encode.
	Flush() ([]byte, error)
}

// NewEncoder returns an Encoder for the named Content-transfer-encoding, or
// ErrUnknownEncoding if name is not one of the constants above (or the
// empty string, which is treated the same as Binary).
func NewEncoder(name string) (Encoder, error) {
	switch name {
	case "", Binary:
		return &asIsEncoder{}, nil
	case SevenBit:
		return &asIsEncoder{require7Bit: true, enforceLineLimit: true}, nil
	case EightBit:
		return &asIsEncoder{enforceLineLimit: true}, nil
	case QuotedPrintable:
		return newQuotedPrintableEncoder(), nil
	case Base64:
		return newBase64Encoder(), nil
	default:
		return nil, ErrUnknownEncoding
	}
}
