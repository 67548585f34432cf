package header

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

// Well-known parameter names used on Content-type and Content-disposition.
const (
	ParamCharset  = "charset"
	ParamBoundary = "boundary"
	ParamFilename = "filename"
)

// ParamValue represents a parameterized header field value, such as is used
// by Content-type ("text/plain; charset=utf-8") and Content-disposition
// ("attachment; filename=foo.txt"). A ParamValue is immutable;
// ModifyParamValue returns a changed copy.
type ParamValue struct {
	value string
	ps    map[string]string
}

// NewParamValue creates a parameterized value with no parameters.
func NewParamValue(value string) *ParamValue {
	return &ParamValue{value: value, ps: map[string]string{}}
}

// NewParamValueWithParams creates a parameterized value with the given
// parameters already attached.
func NewParamValueWithParams(value string, ps map[string]string) *ParamValue {
	if ps == nil {
		ps = map[string]string{}
	}
	return &ParamValue{value: value, ps: ps}
}

// ParseParamValue parses a parameterized header value such as
// "text/plain; charset=utf-8". Parameter decoding, including RFC 2231
// charset/continuation parameters, is delegated to mime.ParseMediaType.
func ParseParamValue(s string) (*ParamValue, error) {
	v, ps, err := mime.ParseMediaType(s)
	if err != nil {
		return nil, err
	}
	return NewParamValueWithParams(v, ps), nil
}

// Value returns the primary value, the text before the first ';'.
func (pv *ParamValue) Value() string { return pv.value }

// Type returns the part of Value() before a '/', for use with Content-type.
func (pv *ParamValue) Type() string {
	if i := strings.IndexByte(pv.value, '/'); i >= 0 {
		return pv.value[:i]
	}
	return ""
}

// Subtype returns the part of Value() after a '/', for use with Content-type.
func (pv *ParamValue) Subtype() string {
	if i := strings.IndexByte(pv.value, '/'); i >= 0 {
		return pv.value[i+1:]
	}
	return ""
}

// Parameter returns the named parameter's value, or "" if unset.
func (pv *ParamValue) Parameter(name string) string {
	return pv.ps[strings.ToLower(name)]
}

// Parameters returns the full parameter map. Callers must not mutate it.
func (pv *ParamValue) Parameters() map[string]string { return pv.ps }

// Clone returns a deep copy of pv.
func (pv *ParamValue) Clone() *ParamValue {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return &ParamValue{value: pv.value, ps: ps}
}

// ParamModifier mutates a cloned ParamValue; see ModifyParamValue.
type ParamModifier func(*ParamValue)

// ChangeValue is a ParamModifier that replaces the primary value.
func ChangeValue(v string) ParamModifier {
	return func(pv *ParamValue) { pv.value = v }
}

// SetParam is a ParamModifier that sets a parameter.
func SetParam(name, value string) ParamModifier {
	return func(pv *ParamValue) { pv.ps[strings.ToLower(name)] = value }
}

// DeleteParam is a ParamModifier that removes a parameter.
func DeleteParam(name string) ParamModifier {
	return func(pv *ParamValue) { delete(pv.ps, strings.ToLower(name)) }
}

// ModifyParamValue clones pv, applies the given modifiers, and returns the
// result.
func ModifyParamValue(pv *ParamValue, mods ...ParamModifier) *ParamValue {
	c := pv.Clone()
	for _, m := range mods {
		m(c)
	}
	return c
}

// maxParamLine is the line width we try to keep a single `name=value` or
// `name*N*=value` parameter segment under before resorting to RFC 2231
// continuation.
const maxParamLine = 78

// Format renders the parameterized value including all parameters. A
// parameter whose value is non-ASCII or would not fit on a single line is
// rendered using RFC 2231 charset/continuation encoding
// (name*0*=utf-8''..., name*1*=..., ...); other parameters are rendered
// plainly, quoting the value when it contains special characters. A
// boundary parameter that fits on one line is always quoted.
func (pv *ParamValue) Format() string {
	names := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := []string{pv.value}
	for _, name := range names {
		parts = append(parts, formatParam(name, pv.ps[name])...)
	}
	return strings.Join(parts, "; ")
}

func formatParam(name, value string) []string {
	if name != ParamBoundary && isPureASCII(value) && !needsParamQuoting(value) && len(name)+len(value)+1 <= maxParamLine {
		return []string{fmt.Sprintf("%s=%s", name, value)}
	}

	if isPureASCII(value) {
		quoted := quoteParamValue(value)
		if len(name)+len(quoted)+1 <= maxParamLine {
			return []string{fmt.Sprintf("%s=%s", name, quoted)}
		}
		return foldPlainParam(name, value)
	}

	return rfc2231Param(name, value)
}

// quoteParamValue renders value as an RFC 2045 quoted-string, backslash-
// escaping the two characters ('"' and '\\') that quoted-string syntax
// requires it.
func quoteParamValue(value string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsParamQuoting(v string) bool {
	if v == "" {
		return true
	}
	for _, r := range v {
		switch r {
		case ' ', '"', ';', '(', ')', '<', '>', '@', ',', ':', '\\', '/', '[', ']', '?', '=':
			return true
		}
	}
	return false
}

// foldPlainParam splits a long but all-ASCII value across RFC 2231
// continuations (name*0=..., name*1=..., ...) without a charset marker,
// quoting each segment.
func foldPlainParam(name, value string) []string {
	const segBudget = 60
	var out []string
	i := 0
	n := 0
	for i < len(value) {
		end := i + segBudget
		if end > len(value) {
			end = len(value)
		}
		out = append(out, fmt.Sprintf(`%s*%d="%s"`, name, n, value[i:end]))
		i = end
		n++
	}
	if len(out) == 0 {
		out = []string{fmt.Sprintf(`%s=""`, name)}
	}
	return out
}

// rfc2231Param renders value as RFC 2231 extended-parameter continuations,
// percent-encoding each segment and marking the first with the utf-8''
// charset/language prefix.
func rfc2231Param(name, value string) []string {
	const segBudget = 50 // post-percent-encoding octets per continuation

	encoded := percentEncode(value)

	var out []string
	n := 0
	for len(encoded) > 0 {
		budget := segBudget
		if n == 0 {
			budget -= len("utf-8''")
		}
		end := cutEncodedAt(encoded, budget)
		seg := encoded[:end]
		if n == 0 {
			seg = "utf-8''" + seg
		}
		out = append(out, fmt.Sprintf("%s*%d*=%s", name, n, seg))
		encoded = encoded[end:]
		n++
	}
	return out
}

// cutEncodedAt finds the largest prefix of a percent-encoded string no
// longer than budget octets that does not split a "%HH" escape in half.
func cutEncodedAt(s string, budget int) int {
	if budget >= len(s) {
		return len(s)
	}
	if budget < 0 {
		budget = 0
	}
	end := budget
	for end > 0 && s[end-1] == '%' {
		end--
	}
	if end > 1 && s[end-2] == '%' {
		end -= 2
	}
	return end
}

func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for _, b := range []byte(s) {
		if isRFC2231Safe(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0xf])
		}
	}
	return sb.String()
}

func isRFC2231Safe(b byte) bool {
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
		return true
	}
	switch b {
	case '!', '#', '$', '&', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
