package message

import (
	"github.com/nwidger/go-mail/boundary"
	"github.com/nwidger/go-mail/header"
)

// MultiPart is a MIME branch: a header collection, a multipart subtype
// (mixed, alternative, related, ...), a boundary delimiter, and an ordered
// sequence of child Parts. The boundary is generated lazily on first use
// and then held stable for the life of the value, so repeated Stream or
// ToBytes calls emit byte-identical output.
type MultiPart struct {
	h        header.Header
	subtype  string
	boundary string
	children []Part
}

func newMultiPart(subtype string) *MultiPart {
	return &MultiPart{subtype: subtype}
}

// Mixed builds a multipart/mixed part from the given children, in order.
func Mixed(children ...Part) *MultiPart {
	mp := newMultiPart("mixed")
	mp.children = children
	return mp
}

// Alternative builds a multipart/alternative part from the given children,
// in order from least to most preferred rendering.
func Alternative(children ...Part) *MultiPart {
	mp := newMultiPart("alternative")
	mp.children = children
	return mp
}

// Related builds a multipart/related part (a root body plus the resources
// it references by Content-ID) from the given children, in order.
func Related(children ...Part) *MultiPart {
	mp := newMultiPart("related")
	mp.children = children
	return mp
}

// Parallel builds a multipart/parallel part from the given children.
func Parallel(children ...Part) *MultiPart {
	mp := newMultiPart("parallel")
	mp.children = children
	return mp
}

// Digest builds a multipart/digest part from the given children.
func Digest(children ...Part) *MultiPart {
	mp := newMultiPart("digest")
	mp.children = children
	return mp
}

// Header returns the part's header collection.
func (mp *MultiPart) Header() *header.Header { return &mp.h }

// ToBytes renders the part eagerly into a single byte slice.
func (mp *MultiPart) ToBytes() ([]byte, error) { return drain(mp.Stream()) }

// Stream returns a lazy chunk iterator over the part's serialized bytes.
func (mp *MultiPart) Stream() *Stream { return newStream(mp) }

func (mp *MultiPart) startFrame() *frame { return &frame{part: mp, step: stepHeader} }

// Boundary returns the delimiter used to separate this part's children,
// generating one on first call if none was set.
func (mp *MultiPart) Boundary() string {
	if mp.boundary == "" {
		mp.boundary = boundary.Generate()
	}
	return mp.boundary
}

// Singlepart appends a leaf child, preserving emission order.
func (mp *MultiPart) Singlepart(child *SinglePart) *MultiPart {
	mp.children = append(mp.children, child)
	return mp
}

// Multipart appends a branch child, preserving emission order.
func (mp *MultiPart) Multipart(child *MultiPart) *MultiPart {
	mp.children = append(mp.children, child)
	return mp
}

// syncHeaders fills in Content-Type from the part's subtype and boundary,
// but only if the caller has not already set it. If the caller did set a
// Content-Type carrying its own boundary parameter, that boundary is
// adopted for delimiting children instead of a generated one, so the
// header and body never disagree about which token separates parts.
func (mp *MultiPart) syncHeaders() {
	if pv, err := mp.h.GetContentType(); err == nil {
		if b := pv.Parameter(header.ParamBoundary); b != "" {
			mp.boundary = b
		}
		return
	}
	pv := header.NewParamValueWithParams("multipart/"+mp.subtype, map[string]string{
		header.ParamBoundary: mp.Boundary(),
	})
	mp.h.SetContentType(pv)
}
