package message

import (
	"io"

	"github.com/nwidger/go-mail/transfer"
)

// step identifies where a frame is within its part's emission plan. The
// same enum serves both part kinds: SinglePart only ever visits
// stepHeader -> stepBody; MultiPart visits
// stepHeader -> stepChild (repeated) -> stepClose.
type step int

const (
	stepHeader step = iota
	stepBody
	stepChild
	stepClose
)

// frame is one entry in a Stream's pending-work stack, per the spec's
// design note that a pull serializer should track "(a) position in the
// current component's emission plan ... (b) for multiparts, a stack of
// pending siblings and boundaries" rather than recursing while pulling.
type frame struct {
	part Part
	step step

	// skipHeader is set when this frame's header fields have already been
	// folded into an ancestor's header block (a Message wrapping a MIME
	// Part merges the part's Content-Type/Content-Transfer-Encoding into
	// its own header and emits a single combined block), so this frame
	// should produce body bytes only.
	skipHeader bool

	// SinglePart state
	enc transfer.Encoder

	// MultiPart state
	childIdx int
}

// Stream is a lazy, pull-based sequence of the bytes that make up a
// serialized Part. Each call to Next yields the next chunk of output,
// exactly preserving the byte order a hypothetical eager serialization
// would produce (the Octet equivalence guarantee), without ever holding
// more than one part's worth of encoder state in memory. A Stream has no
// internal goroutines; the entire pull happens synchronously inside Next.
type Stream struct {
	frames  []*frame
	closers []io.Closer
	err     error
	closed  bool
}

func newStream(p Part) *Stream {
	return &Stream{frames: []*frame{p.startFrame()}}
}

// Next returns the next chunk of serialized bytes, or io.EOF once the part
// has been fully emitted. Any other error aborts the stream: no further
// chunks will be produced, and any resources held by payload sources are
// released before the error is returned.
func (s *Stream) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	for len(s.frames) > 0 {
		f := s.frames[len(s.frames)-1]

		chunk, done, err := s.advance(f)
		if err != nil {
			s.fail(err)
			return nil, err
		}
		if done {
			s.frames = s.frames[:len(s.frames)-1]
		}
		if chunk != nil {
			return chunk, nil
		}
	}

	s.closeAll()
	if s.err == nil {
		s.err = io.EOF
	}
	return nil, s.err
}

func (s *Stream) fail(err error) {
	s.err = err
	s.closeAll()
}

func (s *Stream) closeAll() {
	if s.closed {
		return
	}
	s.closed = true
	for _, c := range s.closers {
		_ = c.Close()
	}
}

func (s *Stream) advance(f *frame) (chunk []byte, done bool, err error) {
	switch part := f.part.(type) {
	case *SinglePart:
		return s.advanceSingle(f, part)
	case *MultiPart:
		return s.advanceMulti(f, part)
	case *Message:
		return s.advanceMessage(f, part)
	default:
		return nil, true, nil
	}
}

func (s *Stream) advanceSingle(f *frame, sp *SinglePart) ([]byte, bool, error) {
	switch f.step {
	case stepHeader:
		if !f.skipHeader {
			sp.syncHeaders()
		}
		f.step = stepBody
		// An in-memory payload is rewound so every Stream of the same part
		// yields the same body bytes.
		if bp, ok := sp.payload.(*bytesPayload); ok {
			bp.done = false
		}
		enc, err := transfer.NewEncoder(sp.encodingName())
		if err != nil {
			return nil, true, err
		}
		f.enc = enc
		if c, ok := sp.payload.(io.Closer); ok {
			s.closers = append(s.closers, c)
		}
		if f.skipHeader {
			return nil, false, nil
		}
		header, err := sp.h.Format()
		if err != nil {
			return nil, true, err
		}
		return header, false, nil

	case stepBody:
		if sp.payload == nil {
			flushed, err := f.enc.Flush()
			if err != nil {
				return nil, true, err
			}
			return flushed, true, nil
		}

		raw, err := sp.payload.Next()
		if err != nil && err != io.EOF {
			return nil, true, &ErrUpstreamPayloadError{Err: err}
		}

		var out []byte
		if len(raw) > 0 {
			encoded, encErr := f.enc.Encode(raw)
			if encErr != nil {
				return nil, true, encErr
			}
			out = encoded
		}

		if err == io.EOF {
			flushed, flushErr := f.enc.Flush()
			if flushErr != nil {
				return nil, true, flushErr
			}
			out = append(out, flushed...)
			return out, true, nil
		}

		return out, false, nil

	default:
		return nil, true, nil
	}
}

func (s *Stream) advanceMulti(f *frame, mp *MultiPart) ([]byte, bool, error) {
	switch f.step {
	case stepHeader:
		if !f.skipHeader {
			mp.syncHeaders()
		}
		f.step = stepChild
		f.childIdx = 0
		if f.skipHeader {
			return nil, false, nil
		}
		header, err := mp.h.Format()
		if err != nil {
			return nil, true, err
		}
		return header, false, nil

	case stepChild:
		if f.childIdx >= len(mp.children) {
			f.step = stepClose
			return nil, false, nil
		}

		var buf []byte
		if f.childIdx > 0 {
			buf = append(buf, "\r\n"...)
		}
		buf = append(buf, '-', '-')
		buf = append(buf, mp.boundary...)
		buf = append(buf, "\r\n"...)

		child := mp.children[f.childIdx]
		f.childIdx++
		s.frames = append(s.frames, child.startFrame())

		return buf, false, nil

	case stepClose:
		if len(mp.children) == 0 {
			return nil, true, nil
		}
		var buf []byte
		buf = append(buf, "\r\n--"...)
		buf = append(buf, mp.boundary...)
		buf = append(buf, "--\r\n"...)
		return buf, true, nil

	default:
		return nil, true, nil
	}
}
