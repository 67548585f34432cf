package transfer

import (
	"bytes"
	"encoding/base64"
	"io"
)

// base64LineLength is the maximum number of base64 characters per output
// line, per RFC 2045 section 6.8.
const base64LineLength = 76

// lineWrapWriter inserts a CRLF every `every` bytes written to it.
// Adapted from the teacher's newlineWriter (message/transfer/base64.go),
// switched from a bare "\n" line break to a full CRLF.
type lineWrapWriter struct {
	every int
	acc   int
	w     io.Writer
}

func (lw *lineWrapWriter) Write(b []byte) (int, error) {
	ix, n := 0, 0
	for len(b[ix:])+lw.acc > lw.every {
		room := lw.every - lw.acc
		ln, err := lw.w.Write(b[ix : ix+room])
		n += ln
		if err != nil {
			return n, err
		}
		if _, err := lw.w.Write([]byte(CRLF)); err != nil {
			return n, err
		}
		ix += room
		lw.acc = 0
	}

	ln, err := lw.w.Write(b[ix:])
	n += ln
	if err != nil {
		return n, err
	}
	lw.acc += len(b[ix:])
	return n, nil
}

// CRLF is the network line break, duplicated here to avoid importing the
// header package solely for this constant.
const CRLF = "\r\n"

// base64Encoder wraps stdlib's base64.Encoder (itself a synchronous
// io.WriteCloser that buffers at most two trailing raw bytes) with line
// wrapping, and drains its output into an in-memory buffer between calls so
// Encode/Flush can return the bytes produced by each chunk individually.
type base64Encoder struct {
	buf *bytes.Buffer
	enc io.WriteCloser
}

func newBase64Encoder() *base64Encoder {
	buf := &bytes.Buffer{}
	lw := &lineWrapWriter{every: base64LineLength, w: buf}
	return &base64Encoder{buf: buf, enc: base64.NewEncoder(base64.StdEncoding, lw)}
}

func (e *base64Encoder) Encode(chunk []byte) ([]byte, error) {
	if _, err := e.enc.Write(chunk); err != nil {
		return nil, err
	}
	return e.drain(), nil
}

func (e *base64Encoder) Flush() ([]byte, error) {
	if err := e.enc.Close(); err != nil {
		return nil, err
	}
	out := e.drain()
	out = append(out, CRLF...)
	return out, nil
}

func (e *base64Encoder) drain() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	e.buf.Reset()
	return out
}
