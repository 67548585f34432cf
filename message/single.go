package message

import (
	"github.com/nwidger/go-mail/header"
	"github.com/nwidger/go-mail/transfer"
)

// SinglePart is a leaf MIME part: a header collection plus an unencoded
// payload. Content-Type and Content-Transfer-Encoding are synthesized from
// the part's configuration at serialization time if the caller did not set
// them explicitly.
type SinglePart struct {
	h         header.Header
	payload   Payload
	encoding  string
	mediaType string
}

// Header returns the part's header collection.
func (sp *SinglePart) Header() *header.Header { return &sp.h }

// ToBytes renders the part eagerly into a single byte slice.
func (sp *SinglePart) ToBytes() ([]byte, error) { return drain(sp.Stream()) }

// Stream returns a lazy chunk iterator over the part's serialized bytes.
func (sp *SinglePart) Stream() *Stream { return newStream(sp) }

func (sp *SinglePart) startFrame() *frame { return &frame{part: sp, step: stepHeader} }

// syncHeaders fills in Content-Type and Content-Transfer-Encoding from the
// part's configuration, but only if the caller has not already set them.
func (sp *SinglePart) syncHeaders() {
	if _, err := sp.h.GetContentTransferEncoding(); err != nil && sp.encoding != "" {
		sp.h.SetContentTransferEncoding(sp.encoding)
	}
	if _, err := sp.h.GetContentType(); err != nil && sp.mediaType != "" {
		sp.h.SetContentType(header.NewParamValue(sp.mediaType))
	}
}

// encodingName returns the Content-Transfer-Encoding the body will
// actually be run through: whatever is set on the header, falling back to
// the preset chosen on the builder.
func (sp *SinglePart) encodingName() string {
	if cte, err := sp.h.GetContentTransferEncoding(); err == nil {
		return cte
	}
	return sp.encoding
}

// SinglePartBuilder assembles a SinglePart. The zero value is not usable;
// start from NewSinglePartBuilder.
type SinglePartBuilder struct {
	sp *SinglePart
}

// NewSinglePartBuilder starts building a SinglePart with no transfer
// encoding preset (defaults to Binary, i.e. bytes passed through as-is).
func NewSinglePartBuilder() *SinglePartBuilder {
	return &SinglePartBuilder{sp: &SinglePart{}}
}

// SevenBit presets Content-Transfer-Encoding to 7bit; the body must be
// all-ASCII or serialization fails with ErrBodyViolatesEncoding.
func (b *SinglePartBuilder) SevenBit() *SinglePartBuilder {
	b.sp.encoding = transfer.SevenBit
	return b
}

// EightBit presets Content-Transfer-Encoding to 8bit.
func (b *SinglePartBuilder) EightBit() *SinglePartBuilder {
	b.sp.encoding = transfer.EightBit
	return b
}

// Binary presets Content-Transfer-Encoding to binary (no constraint on the
// body bytes).
func (b *SinglePartBuilder) Binary() *SinglePartBuilder {
	b.sp.encoding = transfer.Binary
	return b
}

// QuotedPrintable presets Content-Transfer-Encoding to quoted-printable.
func (b *SinglePartBuilder) QuotedPrintable() *SinglePartBuilder {
	b.sp.encoding = transfer.QuotedPrintable
	return b
}

// Base64 presets Content-Transfer-Encoding to base64.
func (b *SinglePartBuilder) Base64() *SinglePartBuilder {
	b.sp.encoding = transfer.Base64
	return b
}

// ContentType sets the part's media type (e.g. "text/plain"); a charset
// parameter can be added afterward via Header().
func (b *SinglePartBuilder) ContentType(mediaType string) *SinglePartBuilder {
	b.sp.mediaType = mediaType
	return b
}

// Header sets an arbitrary header field on the part under construction.
func (b *SinglePartBuilder) Header(name, body string) *SinglePartBuilder {
	b.sp.h.Set(name, body)
	return b
}

// Body attaches the payload and finalizes the part. The payload is the
// unencoded source; the transfer encoding chosen above is applied during
// serialization.
func (b *SinglePartBuilder) Body(p Payload) *SinglePart {
	b.sp.payload = p
	return b.sp
}
