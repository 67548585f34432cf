package transfer

import (
	"bytes"
	"mime/quotedprintable"
)

// quotedPrintableEncoder wraps stdlib's quotedprintable.Writer, which is a
// synchronous io.WriteCloser performing the encoding entirely within each
// Write call, and drains its output into an in-memory buffer so Encode can
// return the bytes produced by each chunk individually. Grounded on the
// teacher's message/transfer/quoted-printable.go, which wraps the same
// stdlib type for its push-based Writer API.
type quotedPrintableEncoder struct {
	buf *bytes.Buffer
	w   *quotedprintable.Writer
}

func newQuotedPrintableEncoder() *quotedPrintableEncoder {
	buf := &bytes.Buffer{}
	return &quotedPrintableEncoder{buf: buf, w: quotedprintable.NewWriter(buf)}
}

func (e *quotedPrintableEncoder) Encode(chunk []byte) ([]byte, error) {
	if _, err := e.w.Write(chunk); err != nil {
		return nil, err
	}
	return e.drain(), nil
}

func (e *quotedPrintableEncoder) Flush() ([]byte, error) {
	if err := e.w.Close(); err != nil {
		return nil, err
	}
	return e.drain(), nil
}

func (e *quotedPrintableEncoder) drain() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	e.buf.Reset()
	return out
}
