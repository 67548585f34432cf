// Package message implements the MIME part tree (single and multipart
// bodies), the top-level Message builder, and the pull-based serializer
// that renders either into a lazy chunk Stream or eagerly into a byte
// slice.
package message

import (
	"io"

	"github.com/nwidger/go-mail/header"
)

// Part is a node in a MIME body tree: either a SinglePart leaf carrying a
// payload, or a MultiPart branch carrying an ordered sequence of child
// Parts. Both satisfy Part so a MultiPart's children can be heterogeneous.
type Part interface {
	// Header returns the part's own header collection. Content-Type and
	// Content-Transfer-Encoding are synthesized into it from the part's
	// configuration at serialization time if not already present.
	Header() *header.Header

	// ToBytes renders the part (headers and body) eagerly into a single
	// byte slice.
	ToBytes() ([]byte, error)

	// Stream returns a lazy chunk iterator over the part's serialized
	// bytes. Concatenating every chunk it yields equals ToBytes's result.
	Stream() *Stream

	// startFrame returns the initial stack frame used to serialize this
	// part; only the Stream machinery in this package calls it.
	startFrame() *frame

	// syncHeaders synthesizes the headers derived from the part's own
	// configuration (Content-Type, Content-Transfer-Encoding, a
	// MultiPart's boundary) into Header(), but only for names not already
	// present there.
	syncHeaders()
}

// mergeHeaders appends every field of src to dst whose name is not already
// present in dst, preserving src's relative order. Used to fold a MIME
// part's own Content-Type/Content-Transfer-Encoding into a Message's
// top-level header block so a MIME message has exactly one header block,
// not one per nesting level.
func mergeHeaders(dst, src *header.Header) {
	for _, f := range src.Fields() {
		if _, ok := dst.Get(f.Name()); !ok {
			dst.Add(f.Name(), f.Body())
		}
	}
}

// drain drains a Stream into a single byte slice. Shared by every Part's
// ToBytes method.
func drain(s *Stream) ([]byte, error) {
	var out []byte
	for {
		chunk, err := s.Next()
		if chunk != nil {
			out = append(out, chunk...)
		}
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, err
		}
	}
}
