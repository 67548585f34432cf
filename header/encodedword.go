package header

import (
	"strings"
)

// maxEncodedWordLength is the maximum length, in octets, of a single
// "=?charset?enc?data?=" token, per RFC 2047 section 2.
const maxEncodedWordLength = 75

// DefaultCharset is used by EncodeWord when the caller does not care which
// charset is named in the encoded-word.
const DefaultCharset = "utf-8"

// needsEncoding reports whether s must be sent as one or more RFC 2047
// encoded-words rather than literally. Besides non-ASCII text, a handful of
// structural characters would be ambiguous if left unescaped inside a
// header field value.
func needsEncoding(s string) bool {
	for _, r := range s {
		if r > 0x7e || (r < 0x20 && r != '\t') {
			return true
		}
		switch r {
		case '=', '?', '_':
			return true
		}
	}
	return false
}

// EncodeWord encodes text for safe inclusion in a header field value. If
// text is pure ASCII and free of RFC 2047/5322 structural characters, it is
// returned unchanged. Otherwise it is rendered as one or more adjacent
// encoded-words (separated by a single space, which doubles as folding
// whitespace): B (base64) when more than half of the runes are outside
// printable ASCII, Q (quoted-printable style) otherwise. Each word is capped at 75 octets and the split points
// never divide a multi-byte UTF-8 sequence because words are always built
// one whole rune at a time.
func EncodeWord(charset, text string) string {
	if charset == "" {
		charset = DefaultCharset
	}

	if !needsEncoding(text) {
		return text
	}

	if useB(text) {
		return encodeWordsB(charset, text)
	}
	return encodeWordsQ(charset, text)
}

// useB decides between B and Q encoding by counting what fraction of runes
// are outside printable ASCII; RFC 2047 leaves the choice to the encoder,
// the convention is to use B when most of the text would otherwise need
// escaping.
func useB(text string) bool {
	nonASCII, total := 0, 0
	for _, r := range text {
		total++
		if r > 0x7e || r < 0x20 {
			nonASCII++
		}
	}
	return total > 0 && nonASCII*2 > total
}

const qWordOverhead = len("=?") + len("?Q?") + len("?=")
const bWordOverhead = len("=?") + len("?B?") + len("?=")

// encodeWordsB splits text into base64-encoded words. Because base64
// operates on whole 3-byte groups, rounding the raw chunk size down to a
// multiple of 3 bytes is sufficient to keep every chunk's boundary aligned
// on a byte, but UTF-8 runes can still straddle a 3-byte boundary, so the
// cut point is backed off to the nearest preceding rune start.
func encodeWordsB(charset, text string) string {
	overhead := bWordOverhead + len(charset)
	maxRaw := base64MaxRawLen(maxEncodedWordLength - overhead)

	var words []string
	data := transcode(charset, text)
	for len(data) > 0 {
		n := maxRaw
		if n > len(data) {
			n = len(data)
		}
		for n < len(data) && !isRuneStart(data[n]) {
			n--
		}
		if n == 0 {
			n = len(data)
		}
		words = append(words, "=?"+charset+"?B?"+base64Encode(data[:n])+"?=")
		data = data[n:]
	}
	return strings.Join(words, " ")
}

// encodeWordsQ splits text into quoted-printable-style words. When charset
// is utf-8 (the common case), it consumes one whole rune's worth of UTF-8
// bytes at a time so a word boundary never falls inside a multi-byte
// sequence; for any other charset it works directly on the transcoded
// octets, since RFC 2047 Q-encoding is defined over the charset's bytes,
// not over Unicode code points.
func encodeWordsQ(charset, text string) string {
	budget := maxEncodedWordLength - qWordOverhead - len(charset)

	if !isUTF8Charset(charset) {
		return encodeWordsQBytes(charset, transcode(charset, text), budget)
	}

	var words []string
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		var sb strings.Builder
		used := 0
		j := i
		for j < len(runes) {
			enc := qEncodeRune(runes[j])
			if used > 0 && used+len(enc) > budget {
				break
			}
			sb.WriteString(enc)
			used += len(enc)
			j++
		}
		if j == i {
			// a single rune's encoding exceeds the budget on its own;
			// emit it anyway rather than loop forever.
			sb.WriteString(qEncodeRune(runes[i]))
			j = i + 1
		}
		words = append(words, "=?"+charset+"?Q?"+sb.String()+"?=")
		i = j
	}
	return strings.Join(words, " ")
}

// encodeWordsQBytes splits already-transcoded bytes into Q-encoded words,
// one octet's escaped form at a time.
func encodeWordsQBytes(charset string, data []byte, budget int) string {
	var words []string
	i := 0
	for i < len(data) {
		var sb strings.Builder
		used := 0
		j := i
		for j < len(data) {
			enc := qEscapeByte(data[j])
			if used > 0 && used+len(enc) > budget {
				break
			}
			sb.WriteString(enc)
			used += len(enc)
			j++
		}
		if j == i {
			sb.WriteString(qEscapeByte(data[i]))
			j = i + 1
		}
		words = append(words, "=?"+charset+"?Q?"+sb.String()+"?=")
		i = j
	}
	return strings.Join(words, " ")
}

func isRuneStart(b byte) bool { return b&0xc0 != 0x80 }

func qEncodeRune(r rune) string {
	if r == ' ' {
		return "_"
	}
	if r < 0x80 && isQSafe(byte(r)) {
		return string(r)
	}
	var sb strings.Builder
	for _, b := range []byte(string(r)) {
		sb.WriteString(qEscape(b))
	}
	return sb.String()
}

func qEscapeByte(b byte) string {
	if b == ' ' {
		return "_"
	}
	if b < 0x80 && isQSafe(b) {
		return string(b)
	}
	return qEscape(b)
}

func isQSafe(b byte) bool {
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
		return true
	}
	switch b {
	case '!', '*', '+', '-', '/':
		return true
	}
	return false
}

func qEscape(b byte) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{'=', hex[b>>4], hex[b&0xf]})
}
