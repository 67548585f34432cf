package header

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
	"golang.org/x/net/idna"
)

// Mailbox is a single RFC 5322 address: an optional display name plus a
// local@domain address-spec. Local is kept verbatim; Domain is stored in its
// native Unicode form and converted to its IDNA ASCII (A-label) form only
// when the mailbox is formatted for the wire.
type Mailbox struct {
	Name   string
	Local  string
	Domain string
}

// NewMailbox builds a Mailbox from its parts.
func NewMailbox(name, local, domain string) Mailbox {
	return Mailbox{Name: name, Local: local, Domain: domain}
}

// ParseMailbox parses a single address of the form `Name <local@domain>` or
// bare `local@domain`. The display name is parsed liberally: it may be
// quoted or bare words, and surrounding whitespace is trimmed. It fails
// with ErrInvalidAddress when the address-spec has no '@' or is rejected by
// go-addr's RFC 5322 validation, and with ErrInvalidDomain when the domain
// cannot be converted to its IDNA ASCII form.
func ParseMailbox(s string) (Mailbox, error) {
	s = strings.TrimSpace(s)

	name := ""
	spec := s
	if open, close := strings.IndexByte(s, '<'), strings.LastIndexByte(s, '>'); open >= 0 && close > open {
		name = strings.TrimSpace(s[:open])
		name = strings.Trim(name, `"`)
		spec = strings.TrimSpace(s[open+1 : close])
	}

	// go-addr performs strict RFC 5322 validation of the address-spec. We
	// still do our own local/domain split below since this library's
	// Mailbox keeps the domain in Unicode form and applies IDNA only on
	// output, which go-addr's own formatting does not do.
	if _, err := addr.ParseEmailAddress(spec); err != nil && strings.Contains(spec, "@") {
		return Mailbox{}, ErrInvalidAddress
	}

	local, domain, ok := splitAddrSpec(spec)
	if !ok {
		return Mailbox{}, ErrInvalidAddress
	}
	if domain != "" {
		if _, idnaErr := idna.ToASCII(domain); idnaErr != nil {
			return Mailbox{}, ErrInvalidDomain
		}
	}

	return Mailbox{Name: name, Local: local, Domain: domain}, nil
}

// splitAddrSpec splits an address-spec that go-addr has accepted on its
// final '@', treating everything before it as the local-part and everything
// after as the domain.
func splitAddrSpec(s string) (local, domain string, ok bool) {
	i := strings.LastIndexByte(s, '@')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// needsNameQuoting reports whether name must be quoted or encoded-word'd
// rather than emitted bare, per RFC 5322 atext/specials rules.
func needsNameQuoting(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r > 0x7e || r < 0x20 {
			return true
		}
		switch r {
		case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
			return true
		}
	}
	return false
}

// Format renders the mailbox in RFC 5322 address syntax: the domain is
// IDNA-converted to ASCII, a non-ASCII display name is emitted as RFC 2047
// encoded-words, and an ASCII display name containing special characters
// is emitted as a quoted-string.
func (m Mailbox) Format() string {
	spec := m.formatAddrSpec()

	if m.Name == "" {
		return spec
	}

	if !needsNameQuoting(m.Name) {
		return m.Name + " <" + spec + ">"
	}

	if isPureASCII(m.Name) {
		return `"` + strings.ReplaceAll(m.Name, `"`, `\"`) + `" <` + spec + ">"
	}

	return EncodeWord(DefaultCharset, m.Name) + " <" + spec + ">"
}

func (m Mailbox) formatAddrSpec() string {
	domain := m.Domain
	if a, err := idna.ToASCII(domain); err == nil {
		domain = a
	}
	return m.Local + "@" + domain
}

func isPureASCII(s string) bool {
	for _, r := range s {
		if r > 0x7e || r < 0x20 {
			return false
		}
	}
	return true
}

// MailboxList is an ordered, comma-separated sequence of mailboxes.
type MailboxList []Mailbox

// ParseMailboxList parses a comma-separated address list.
func ParseMailboxList(s string) (MailboxList, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := splitAddressList(s)
	out := make(MailboxList, 0, len(parts))
	for _, p := range parts {
		mb, err := ParseMailbox(p)
		if err != nil {
			return nil, err
		}
		out = append(out, mb)
	}
	return out, nil
}

// splitAddressList splits a mailbox-list on top-level commas, respecting
// quoted-strings and angle-address brackets so that a comma inside a quoted
// display name or inside angle brackets does not split an entry in two.
func splitAddressList(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '<':
			if !inQuote {
				depth++
			}
		case '>':
			if !inQuote && depth > 0 {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Format renders the list as comma-space separated mailboxes. Folding, if
// needed to keep the enclosing field line within the preferred 78-octet
// width, is handled by Header.Format via commaBreakpoints.
func (l MailboxList) Format() string {
	parts := make([]string, len(l))
	for i, m := range l {
		parts[i] = m.Format()
	}
	return strings.Join(parts, ", ")
}
