package header

import (
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// transcode converts s (a Go string, i.e. UTF-8) into the bytes of the
// named IANA charset, so EncodeWord can honor a charset other than its
// default of utf-8. utf-8 itself, and any charset ianaindex does not
// recognize, pass through unchanged: this library only ever needs to
// produce bytes for an encoded-word, never to guess at one, so an unknown
// charset name is not an error here, just a charset this call can't help
// with.
func transcode(charset, s string) []byte {
	if isUTF8Charset(charset) {
		return []byte(s)
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return []byte(s)
	}

	out, err := enc.NewEncoder().String(s)
	if err != nil {
		return []byte(s)
	}
	return []byte(out)
}

func isUTF8Charset(charset string) bool {
	switch charset {
	case "", "utf-8", "UTF-8", "utf8", "UTF8":
		return true
	}
	return false
}
