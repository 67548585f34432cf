package message

import (
	"bufio"
	"io"
)

// readChunkSize is the size of chunk a ReaderPayload reads per Next call.
const readChunkSize = 32 * 1024

// Payload is the minimal capability a SinglePart body source must
// implement: produce the next chunk of unencoded bytes, or io.EOF when
// exhausted. Any file, in-memory buffer, or synthesized source (a
// log-tailing generator, for instance) can satisfy it. If a Payload also
// implements io.Closer, the serializer closes it once after the source is
// drained or after an error aborts serialization, whichever comes first.
type Payload interface {
	// Next returns the next chunk of raw, not-yet-transfer-encoded bytes.
	// It returns io.EOF (with a nil chunk, or a final non-empty chunk
	// paired with io.EOF) once the source is exhausted. Any other error is
	// treated as a payload-source failure and reported to the caller as
	// ErrUpstreamPayloadError.
	Next() ([]byte, error)
}

type bytesPayload struct {
	data []byte
	done bool
}

// BytesPayload returns a Payload that yields data as a single chunk.
func BytesPayload(data []byte) Payload {
	return &bytesPayload{data: data}
}

// TextPayload returns a Payload that yields the UTF-8 bytes of s as a
// single chunk.
func TextPayload(s string) Payload {
	return &bytesPayload{data: []byte(s)}
}

func (p *bytesPayload) Next() ([]byte, error) {
	if p.done {
		return nil, io.EOF
	}
	p.done = true
	return p.data, nil
}

// readerPayload adapts an io.Reader into a Payload, reading fixed-size
// chunks so a large attachment or log file is never held entirely in
// memory. If the wrapped reader is also an io.Closer, Close is forwarded.
type readerPayload struct {
	r   *bufio.Reader
	src io.Reader
}

// ReaderPayload returns a Payload that reads chunks from r. If r implements
// io.Closer, the serializer closes it after the payload is drained (or on
// error).
func ReaderPayload(r io.Reader) Payload {
	return &readerPayload{r: bufio.NewReaderSize(r, readChunkSize), src: r}
}

func (p *readerPayload) Next() ([]byte, error) {
	buf := make([]byte, readChunkSize)
	n, err := p.r.Read(buf)
	if n == 0 && err != nil {
		return nil, err
	}
	if err != nil && err != io.EOF {
		return buf[:n], err
	}
	return buf[:n], nil
}

func (p *readerPayload) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// funcPayload adapts a plain generator function into a Payload.
type funcPayload struct {
	next func() ([]byte, error)
}

// FuncPayload returns a Payload backed by an arbitrary generator function,
// for payload sources that don't fit the Reader shape (a custom chunked
// source, a channel drain, and so on). next must return io.EOF once
// exhausted.
func FuncPayload(next func() ([]byte, error)) Payload {
	return &funcPayload{next: next}
}

func (p *funcPayload) Next() ([]byte, error) {
	return p.next()
}
