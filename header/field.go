package header

import "strings"

// Field is a single "Name: Body" header field pair, stored with its name in
// canonical display case and its body unfolded (no embedded CRLFs).
type Field struct {
	name string
	body string
}

// NewField builds a Field, canonicalizing name's case.
func NewField(name, body string) *Field {
	return &Field{name: canonicalFieldName(name), body: body}
}

// Name returns the field's display name.
func (f *Field) Name() string { return f.name }

// Body returns the field's unfolded body.
func (f *Field) Body() string { return f.body }

// SetName replaces the field's name, canonicalizing its case.
func (f *Field) SetName(name string) { f.name = canonicalFieldName(name) }

// SetBody replaces the field's body.
func (f *Field) SetBody(body string) { f.body = body }

// knownFieldNames maps the lowercased form of every header this package has
// a typed accessor for to its canonical display spelling.
var knownFieldNames = map[string]string{
	"from":                      "From",
	"to":                        "To",
	"cc":                        "Cc",
	"bcc":                       "Bcc",
	"sender":                    "Sender",
	"reply-to":                  "Reply-To",
	"subject":                   "Subject",
	"date":                      "Date",
	"message-id":                "Message-ID",
	"in-reply-to":               "In-Reply-To",
	"references":                "References",
	"keywords":                  "Keywords",
	"comments":                  "Comments",
	"content-type":              "Content-Type",
	"content-transfer-encoding": "Content-Transfer-Encoding",
	"content-disposition":       "Content-Disposition",
	"content-id":                "Content-ID",
	"mime-version":              "MIME-Version",
	"user-agent":                "User-Agent",
}

// canonicalFieldName returns the canonical display spelling of a header
// name. Headers this package knows about are spelled exactly as RFC 5322 (or
// the relevant MIME RFC) spells them; anything else is title-cased segment
// by segment on '-' so "x-custom-flag" becomes "X-Custom-Flag".
func canonicalFieldName(name string) string {
	if known, ok := knownFieldNames[strings.ToLower(name)]; ok {
		return known
	}

	segs := strings.Split(name, "-")
	for i, seg := range segs {
		if seg == "" {
			continue
		}
		segs[i] = strings.ToUpper(seg[:1]) + strings.ToLower(seg[1:])
	}
	return strings.Join(segs, "-")
}
