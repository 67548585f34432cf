package message

import (
	"io"
	"time"

	"github.com/nwidger/go-mail/header"
)

// Message is a complete, ready-to-transmit email: a top-level header
// collection plus a body, which is either a plain Payload (no MIME
// envelope beyond whatever headers the caller set) or a Part tree (a
// SinglePart or MultiPart, with MIME-Version synthesized).
type Message struct {
	h       header.Header
	body    Payload
	part    Part
	isMIME  bool
}

// Header returns the message's top-level header collection.
func (m *Message) Header() *header.Header { return &m.h }

// ToBytes renders the whole message (headers, blank line, body) eagerly
// into a single byte slice.
func (m *Message) ToBytes() ([]byte, error) { return drain(m.Stream()) }

// Stream returns a lazy chunk iterator over the message's serialized
// bytes.
func (m *Message) Stream() *Stream { return newStream(m) }

func (m *Message) startFrame() *frame { return &frame{part: m, step: stepHeader} }

func (m *Message) syncHeaders() {
	if m.isMIME {
		if _, err := m.h.GetMIMEVersion(); err != nil {
			m.h.SetMIMEVersion("1.0")
		}
	}
	if _, err := m.h.GetDate(); err != nil {
		m.h.SetDate(time.Now().UTC())
	}
	if m.part != nil {
		m.part.syncHeaders()
		mergeHeaders(&m.h, m.part.Header())
	}
}

// MessageBuilder assembles a Message. Header-setting methods collect the
// first error they encounter (invalid address syntax, unparseable domain,
// and the like) rather than returning it immediately; Body or MIMEBody
// surfaces it.
// This lets a long chain of setter calls read linearly without an error
// check after every line.
type MessageBuilder struct {
	m   *Message
	err error
}

// NewMessageBuilder starts building a Message.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{m: &Message{}}
}

func (b *MessageBuilder) fail(name string, err error) {
	if b.err == nil && err != nil {
		b.err = &ErrInvalidHeader{Name: name, Err: err}
	}
}

// From sets the From header from one or more RFC 5322 mailbox strings.
func (b *MessageBuilder) From(addrs ...string) *MessageBuilder {
	mbs, err := parseMailboxes(addrs)
	if err != nil {
		b.fail("From", err)
		return b
	}
	b.m.h.SetFrom(mbs...)
	return b
}

// To sets the To header from one or more RFC 5322 mailbox strings. Called
// with no addresses, it leaves the header untouched.
func (b *MessageBuilder) To(addrs ...string) *MessageBuilder {
	if len(addrs) == 0 {
		return b
	}
	mbs, err := parseMailboxes(addrs)
	if err != nil {
		b.fail("To", err)
		return b
	}
	b.m.h.SetTo(mbs...)
	return b
}

// Cc sets the Cc header from one or more RFC 5322 mailbox strings. Called
// with no addresses, it leaves the header untouched.
func (b *MessageBuilder) Cc(addrs ...string) *MessageBuilder {
	if len(addrs) == 0 {
		return b
	}
	mbs, err := parseMailboxes(addrs)
	if err != nil {
		b.fail("Cc", err)
		return b
	}
	b.m.h.SetCc(mbs...)
	return b
}

// Bcc sets the Bcc header from one or more RFC 5322 mailbox strings. Per
// common mail-submission practice, a Bcc header set here is retained on
// this Message value; stripping it for transmission to primary recipients
// is the caller's responsibility, not this library's, since the library
// has no notion of "the copy sent to recipient X". Called with no
// addresses, it leaves the header untouched.
func (b *MessageBuilder) Bcc(addrs ...string) *MessageBuilder {
	if len(addrs) == 0 {
		return b
	}
	mbs, err := parseMailboxes(addrs)
	if err != nil {
		b.fail("Bcc", err)
		return b
	}
	b.m.h.SetBcc(mbs...)
	return b
}

// Sender sets the Sender header from a single RFC 5322 mailbox string.
func (b *MessageBuilder) Sender(addr string) *MessageBuilder {
	mb, err := header.ParseMailbox(addr)
	if err != nil {
		b.fail("Sender", err)
		return b
	}
	b.m.h.SetSender(mb)
	return b
}

// ReplyTo sets the Reply-To header from one or more RFC 5322 mailbox
// strings. Called with no addresses, it leaves the header untouched.
func (b *MessageBuilder) ReplyTo(addrs ...string) *MessageBuilder {
	if len(addrs) == 0 {
		return b
	}
	mbs, err := parseMailboxes(addrs)
	if err != nil {
		b.fail("Reply-To", err)
		return b
	}
	b.m.h.SetReplyTo(mbs...)
	return b
}

// Subject sets the Subject header, encoding it as an RFC 2047 encoded-word
// if it contains non-ASCII text.
func (b *MessageBuilder) Subject(s string) *MessageBuilder {
	b.m.h.SetSubject(s)
	return b
}

// Date sets the Date header. If never called, the message carries no Date
// until Stream/ToBytes fills in the current time at serialization.
func (b *MessageBuilder) Date(t time.Time) *MessageBuilder {
	b.m.h.SetDate(t)
	return b
}

// Header sets an arbitrary header field on the message under construction.
func (b *MessageBuilder) Header(name, body string) *MessageBuilder {
	b.m.h.Set(name, body)
	return b
}

// Body finalizes the message with a plain, non-MIME payload: no
// MIME-Version or Content-* headers are synthesized beyond whatever the
// caller already set. Returns ErrBodyAlreadySet if a body was already
// attached via Body or MIMEBody.
func (b *MessageBuilder) Body(p Payload) (*Message, error) {
	if b.m.body != nil || b.m.part != nil {
		return nil, ErrBodyAlreadySet
	}
	if b.err != nil {
		return nil, b.err
	}
	b.m.body = p
	return b.m, nil
}

// MIMEBody finalizes the message with a MIME part tree (a SinglePart or
// MultiPart). MIME-Version: 1.0 is synthesized if not already present.
// Returns ErrBodyAlreadySet if a body was already attached via Body or
// MIMEBody.
func (b *MessageBuilder) MIMEBody(p Part) (*Message, error) {
	if b.m.body != nil || b.m.part != nil {
		return nil, ErrBodyAlreadySet
	}
	if b.err != nil {
		return nil, b.err
	}
	b.m.part = p
	b.m.isMIME = true
	return b.m, nil
}

func parseMailboxes(addrs []string) (header.MailboxList, error) {
	mbs := make(header.MailboxList, 0, len(addrs))
	for _, a := range addrs {
		mb, err := header.ParseMailbox(a)
		if err != nil {
			return nil, err
		}
		mbs = append(mbs, mb)
	}
	return mbs, nil
}

func (s *Stream) advanceMessage(f *frame, m *Message) ([]byte, bool, error) {
	switch f.step {
	case stepHeader:
		m.syncHeaders()
		f.step = stepBody
		if bp, ok := m.body.(*bytesPayload); ok {
			bp.done = false
		}
		if m.part == nil {
			if c, ok := m.body.(io.Closer); ok {
				s.closers = append(s.closers, c)
			}
		}
		header, err := m.h.Format()
		if err != nil {
			return nil, true, err
		}
		return header, false, nil

	case stepBody:
		if m.part != nil {
			s.frames = append(s.frames, &frame{part: m.part, step: stepHeader, skipHeader: true})
			f.step = stepClose
			return nil, false, nil
		}
		if m.body == nil {
			return nil, true, nil
		}
		raw, err := m.body.Next()
		if err != nil && err != io.EOF {
			return nil, true, &ErrUpstreamPayloadError{Err: err}
		}
		if err == io.EOF {
			return raw, true, nil
		}
		return raw, false, nil

	default:
		return nil, true, nil
	}
}
