package header

import (
	"bytes"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// UnixDateWithEarlyYear is a date format seen in the wild that neither
// net/mail nor araddon/dateparse handle on their own.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// breakKind selects which breakpoint strategy Format uses when a field's
// body is long enough to need folding.
type breakKind int

const (
	breakWhitespace breakKind = iota
	breakComma
	breakSemicolon
	breakNone
)

var breakKindByName = map[string]breakKind{
	"From":                 breakComma,
	"To":                   breakComma,
	"Cc":                   breakComma,
	"Bcc":                  breakComma,
	"Sender":               breakComma,
	"Reply-To":             breakComma,
	"Content-Type":         breakSemicolon,
	"Content-Disposition":  breakSemicolon,
	"Message-ID":           breakNone,
	"In-Reply-To":          breakNone,
	"Content-ID":           breakNone,
}

func breakKindFor(name string) breakKind {
	if k, ok := breakKindByName[name]; ok {
		return k
	}
	return breakWhitespace
}

// Header is an ordered, possibly repeating collection of header fields,
// together with typed accessors for the fields RFC 5322 and MIME define.
// Zero value is an empty header ready to use.
type Header struct {
	fields []*Field

	// cache holds the typed value a getter last parsed for a field name,
	// keyed by the field's lowercased name, so a repeated Get of a Date,
	// address list or parameter value is not parsed again. Set, Add, SetAll
	// and Del drop the name's entry; the typed setters call Set after
	// setCache, so a value just set is parsed again on its first Get. It is
	// never consulted for correctness; Format always renders from fields.
	cache map[string]any
}

func (h *Header) getCache(name string) (any, bool) {
	v, ok := h.cache[strings.ToLower(name)]
	return v, ok
}

func (h *Header) setCache(name string, v any) {
	if h.cache == nil {
		h.cache = make(map[string]any)
	}
	h.cache[strings.ToLower(name)] = v
}

func (h *Header) dropCache(name string) {
	delete(h.cache, strings.ToLower(name))
}

// Len returns the number of fields in the header, counting repeated names
// separately.
func (h *Header) Len() int { return len(h.fields) }

// GetField returns the nth field in header order, or nil if n is out of
// range.
func (h *Header) GetField(n int) *Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// Fields returns every field in header order. The returned slice and its
// elements must not be mutated by the caller.
func (h *Header) Fields() []*Field {
	out := make([]*Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// IndexesNamed returns the positions of every field named name, matched
// case-insensitively.
func (h *Header) IndexesNamed(name string) []int {
	var ixs []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			ixs = append(ixs, i)
		}
	}
	return ixs
}

// FieldsNamed returns every field named name, in header order.
func (h *Header) FieldsNamed(name string) []*Field {
	var out []*Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			out = append(out, f)
		}
	}
	return out
}

// Add appends a new field to the end of the header without disturbing any
// existing field of the same name. Use this for repeatable headers such as
// Comments or Received.
func (h *Header) Add(name, body string) {
	h.dropCache(name)
	h.fields = append(h.fields, NewField(name, body))
}

// Set replaces every existing field named name with a single field holding
// body. If name is not yet present, the new field is appended.
func (h *Header) Set(name, body string) {
	h.dropCache(name)

	ixs := h.IndexesNamed(name)
	if len(ixs) == 0 {
		h.fields = append(h.fields, NewField(name, body))
		return
	}

	for i := len(ixs) - 1; i > 0; i-- {
		h.delete(ixs[i])
	}
	h.fields[ixs[0]].SetBody(body)
}

// SetAll replaces every existing field named name with one field per body
// given, in order, reusing existing field slots where possible and deleting
// or appending as needed to make the final count match len(bodies).
func (h *Header) SetAll(name string, bodies ...string) {
	h.dropCache(name)

	ixs := h.IndexesNamed(name)
	for i, b := range bodies {
		if i < len(ixs) {
			h.fields[ixs[i]].SetBody(b)
			continue
		}
		h.fields = append(h.fields, NewField(name, b))
	}
	for i := len(ixs) - 1; i >= len(bodies); i-- {
		h.delete(ixs[i])
	}
}

// Get returns the body of the first field named name.
func (h *Header) Get(name string) (string, bool) {
	ixs := h.IndexesNamed(name)
	if len(ixs) == 0 {
		return "", false
	}
	return h.fields[ixs[0]].Body(), true
}

// GetAll returns the bodies of every field named name, in header order.
func (h *Header) GetAll(name string) []string {
	fs := h.FieldsNamed(name)
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Body()
	}
	return out
}

// Del removes every field named name.
func (h *Header) Del(name string) {
	h.dropCache(name)
	ixs := h.IndexesNamed(name)
	for i := len(ixs) - 1; i >= 0; i-- {
		h.delete(ixs[i])
	}
}

func (h *Header) delete(n int) {
	h.fields = append(h.fields[:n], h.fields[n+1:]...)
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	fields := make([]*Field, len(h.fields))
	for i, f := range h.fields {
		fields[i] = NewField(f.Name(), f.Body())
	}
	cache := make(map[string]any, len(h.cache))
	for k, v := range h.cache {
		cache[k] = v
	}
	return &Header{fields: fields, cache: cache}
}

// Format renders the full header block, including every field, folded to
// stay within the preferred line width, and terminated with the blank line
// that separates a header block from its body. It returns ErrHeaderTooLong
// if some field's value has no breakpoint that brings it under the 998
// octet hard limit, and ErrUnknownValueShape if a field's body cannot be
// rendered as a header value at all (a bare CR or LF outside of folding,
// which this package never produces itself but a caller could set via
// Add/Set/SetAll).
func (h *Header) Format() ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range h.fields {
		if strings.ContainsAny(f.Body(), "\r\n") {
			return nil, ErrUnknownValueShape
		}

		buf.WriteString(f.Name())
		buf.WriteString(": ")
		prefixLen := len(f.Name()) + 2

		var bps []int
		switch breakKindFor(f.Name()) {
		case breakComma:
			bps = commaBreakpoints(f.Body())
		case breakSemicolon:
			bps = semiBreakpoints(f.Body())
		case breakNone:
			bps = nil
		default:
			bps = whitespaceBreakpoints(f.Body())
		}
		if err := fold(&buf, prefixLen, f.Body(), bps); err != nil {
			return nil, err
		}
		buf.WriteString(CRLF)
	}
	buf.WriteString(CRLF)
	return buf.Bytes(), nil
}

// ParseTime parses body as an RFC 5322 date, falling back to the same
// layout with an unpadded day, then github.com/araddon/dateparse's lenient
// parser, and finally the nonstandard UnixDateWithEarlyYear format.
func ParseTime(body string) (time.Time, error) {
	if t, err := time.Parse(time.RFC1123Z, body); err == nil {
		return t, nil
	}
	if t, err := time.Parse("Mon, 2 Jan 2006 15:04:05 -0700", body); err == nil {
		return t, nil
	}
	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}
	return time.Parse(UnixDateWithEarlyYear, body)
}

// GetDate returns the parsed Date header.
func (h *Header) GetDate() (time.Time, error) {
	if v, ok := h.getCache("date"); ok {
		if t, isTime := v.(time.Time); isTime {
			return t, nil
		}
	}
	body, ok := h.Get("Date")
	if !ok {
		return time.Time{}, ErrNoSuchField
	}
	t, err := ParseTime(body)
	if err != nil {
		return time.Time{}, err
	}
	h.setCache("date", t)
	return t, nil
}

// SetDate sets the Date header, formatted per RFC 5322 (e.g. "Mon, 02 Jan
// 2006 15:04:05 -0700").
func (h *Header) SetDate(t time.Time) {
	h.setCache("date", t)
	h.Set("Date", t.Format(time.RFC1123Z))
}

// GetSubject returns the Subject header body as stored, which may hold RFC
// 2047 encoded-words. Decoding them is the caller's responsibility if
// needed; this library is write-only.
func (h *Header) GetSubject() (string, error) {
	body, ok := h.Get("Subject")
	if !ok {
		return "", ErrNoSuchField
	}
	return body, nil
}

// SetSubject sets the Subject header, encoding it as RFC 2047 encoded-words
// if it contains non-ASCII text.
func (h *Header) SetSubject(s string) {
	h.Set("Subject", EncodeWord(DefaultCharset, s))
}

func (h *Header) setMailboxList(name string, mbs MailboxList) {
	h.setCache(name, mbs)
	h.Set(name, mbs.Format())
}

func (h *Header) getMailboxList(name string) (MailboxList, error) {
	if v, ok := h.getCache(name); ok {
		if mbs, isList := v.(MailboxList); isList {
			return mbs, nil
		}
	}
	body, ok := h.Get(name)
	if !ok {
		return nil, ErrNoSuchField
	}
	mbs, err := ParseMailboxList(body)
	if err != nil {
		return nil, err
	}
	h.setCache(name, mbs)
	return mbs, nil
}

// SetFrom sets the From header to the given mailboxes.
func (h *Header) SetFrom(mbs ...Mailbox) { h.setMailboxList("From", mbs) }

// GetFrom returns the parsed From header.
func (h *Header) GetFrom() (MailboxList, error) { return h.getMailboxList("From") }

// SetTo sets the To header to the given mailboxes.
func (h *Header) SetTo(mbs ...Mailbox) { h.setMailboxList("To", mbs) }

// GetTo returns the parsed To header.
func (h *Header) GetTo() (MailboxList, error) { return h.getMailboxList("To") }

// SetCc sets the Cc header to the given mailboxes.
func (h *Header) SetCc(mbs ...Mailbox) { h.setMailboxList("Cc", mbs) }

// GetCc returns the parsed Cc header.
func (h *Header) GetCc() (MailboxList, error) { return h.getMailboxList("Cc") }

// SetBcc sets the Bcc header to the given mailboxes. Per RFC 5322 it is
// common practice to omit Bcc recipients entirely from the transmitted
// message; this library has no notion of a per-recipient copy, so it
// retains Bcc verbatim like any other address header and leaves stripping
// it before transmission to the caller.
func (h *Header) SetBcc(mbs ...Mailbox) { h.setMailboxList("Bcc", mbs) }

// GetBcc returns the parsed Bcc header.
func (h *Header) GetBcc() (MailboxList, error) { return h.getMailboxList("Bcc") }

// SetSender sets the Sender header to a single mailbox.
func (h *Header) SetSender(mb Mailbox) { h.setMailboxList("Sender", MailboxList{mb}) }

// GetSender returns the parsed Sender header.
func (h *Header) GetSender() (Mailbox, error) {
	mbs, err := h.getMailboxList("Sender")
	if err != nil {
		return Mailbox{}, err
	}
	if len(mbs) == 0 {
		return Mailbox{}, ErrNoSuchField
	}
	return mbs[0], nil
}

// SetReplyTo sets the Reply-To header to the given mailboxes.
func (h *Header) SetReplyTo(mbs ...Mailbox) { h.setMailboxList("Reply-To", mbs) }

// GetReplyTo returns the parsed Reply-To header.
func (h *Header) GetReplyTo() (MailboxList, error) { return h.getMailboxList("Reply-To") }

// SetMessageID sets the Message-ID header. id should not include the
// enclosing angle brackets; they are added automatically.
func (h *Header) SetMessageID(id string) {
	h.Set("Message-ID", wrapMsgID(id))
}

// GetMessageID returns the Message-ID header body with its enclosing angle
// brackets stripped.
func (h *Header) GetMessageID() (string, error) {
	body, ok := h.Get("Message-ID")
	if !ok {
		return "", ErrNoSuchField
	}
	return unwrapMsgID(body), nil
}

// SetInReplyTo sets the In-Reply-To header to a single referenced message
// id.
func (h *Header) SetInReplyTo(id string) {
	h.Set("In-Reply-To", wrapMsgID(id))
}

// GetInReplyTo returns the In-Reply-To header body with brackets stripped.
func (h *Header) GetInReplyTo() (string, error) {
	body, ok := h.Get("In-Reply-To")
	if !ok {
		return "", ErrNoSuchField
	}
	return unwrapMsgID(body), nil
}

// SetReferences sets the References header to the given chain of message
// ids, oldest first.
func (h *Header) SetReferences(ids ...string) {
	wrapped := make([]string, len(ids))
	for i, id := range ids {
		wrapped[i] = wrapMsgID(id)
	}
	h.Set("References", strings.Join(wrapped, " "))
}

// GetReferences returns the References header as a slice of message ids
// with brackets stripped.
func (h *Header) GetReferences() ([]string, error) {
	body, ok := h.Get("References")
	if !ok {
		return nil, ErrNoSuchField
	}
	fields := strings.Fields(body)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = unwrapMsgID(f)
	}
	return out, nil
}

func wrapMsgID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "<") && strings.HasSuffix(id, ">") {
		return id
	}
	return "<" + id + ">"
}

func unwrapMsgID(id string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(id), "<"), ">")
}

// SetKeywords sets the Keywords header to a single comma-separated field.
func (h *Header) SetKeywords(keywords ...string) {
	h.Set("Keywords", strings.Join(keywords, ", "))
}

// GetKeywords returns the Keywords header split on commas.
func (h *Header) GetKeywords() ([]string, error) {
	body, ok := h.Get("Keywords")
	if !ok {
		return nil, ErrNoSuchField
	}
	parts := strings.Split(body, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out, nil
}

// AddComment appends a Comments header. Comments is repeatable: calling
// this multiple times adds multiple fields rather than replacing one.
func (h *Header) AddComment(c string) {
	h.Add("Comments", EncodeWord(DefaultCharset, c))
}

// GetComments returns every Comments header body, in header order.
func (h *Header) GetComments() []string {
	return h.GetAll("Comments")
}

// SetContentType sets the Content-Type header.
func (h *Header) SetContentType(v *ParamValue) {
	h.setCache("content-type", v)
	h.Set("Content-Type", v.Format())
}

// GetContentType returns the parsed Content-Type header.
func (h *Header) GetContentType() (*ParamValue, error) {
	return h.getParamValue("Content-Type")
}

// SetContentDisposition sets the Content-Disposition header.
func (h *Header) SetContentDisposition(v *ParamValue) {
	h.setCache("content-disposition", v)
	h.Set("Content-Disposition", v.Format())
}

// GetContentDisposition returns the parsed Content-Disposition header.
func (h *Header) GetContentDisposition() (*ParamValue, error) {
	return h.getParamValue("Content-Disposition")
}

func (h *Header) getParamValue(name string) (*ParamValue, error) {
	if v, ok := h.getCache(name); ok {
		if pv, isPV := v.(*ParamValue); isPV {
			return pv, nil
		}
	}
	body, ok := h.Get(name)
	if !ok {
		return nil, ErrNoSuchField
	}
	pv, err := ParseParamValue(body)
	if err != nil {
		return nil, err
	}
	h.setCache(name, pv)
	return pv, nil
}

// SetContentTransferEncoding sets the Content-Transfer-Encoding header.
func (h *Header) SetContentTransferEncoding(enc string) {
	h.Set("Content-Transfer-Encoding", enc)
}

// GetContentTransferEncoding returns the Content-Transfer-Encoding header.
func (h *Header) GetContentTransferEncoding() (string, error) {
	body, ok := h.Get("Content-Transfer-Encoding")
	if !ok {
		return "", ErrNoSuchField
	}
	return body, nil
}

// SetContentID sets the Content-ID header, wrapping id in angle brackets if
// needed.
func (h *Header) SetContentID(id string) {
	h.Set("Content-ID", wrapMsgID(id))
}

// GetContentID returns the Content-ID header with brackets stripped.
func (h *Header) GetContentID() (string, error) {
	body, ok := h.Get("Content-ID")
	if !ok {
		return "", ErrNoSuchField
	}
	return unwrapMsgID(body), nil
}

// SetMIMEVersion sets the MIME-Version header. Message builders should
// always call this (with "1.0") whenever a part carries MIME headers.
func (h *Header) SetMIMEVersion(v string) {
	h.Set("MIME-Version", v)
}

// GetMIMEVersion returns the MIME-Version header.
func (h *Header) GetMIMEVersion() (string, error) {
	body, ok := h.Get("MIME-Version")
	if !ok {
		return "", ErrNoSuchField
	}
	return body, nil
}

// SetUserAgent sets the User-Agent header.
func (h *Header) SetUserAgent(ua string) {
	h.Set("User-Agent", ua)
}
