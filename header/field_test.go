package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalFieldNameKnownHeader(t *testing.T) {
	assert.Equal(t, "Content-Type", canonicalFieldName("content-type"))
	assert.Equal(t, "Message-ID", canonicalFieldName("MESSAGE-ID"))
	assert.Equal(t, "MIME-Version", canonicalFieldName("mime-version"))
}

func TestCanonicalFieldNameUnknownHeaderIsTitleCased(t *testing.T) {
	assert.Equal(t, "X-Custom-Flag", canonicalFieldName("x-custom-flag"))
	assert.Equal(t, "X-Custom-Flag", canonicalFieldName("X-CUSTOM-FLAG"))
}

func TestFieldSettersCanonicalizeName(t *testing.T) {
	f := NewField("subject", "hi")
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "hi", f.Body())

	f.SetName("content-id")
	f.SetBody("<a@domain.tld>")
	assert.Equal(t, "Content-ID", f.Name())
	assert.Equal(t, "<a@domain.tld>", f.Body())
}
