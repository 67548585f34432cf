package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamValueFormatPlain(t *testing.T) {
	pv := NewParamValueWithParams("text/plain", map[string]string{ParamCharset: "utf-8"})
	assert.Equal(t, "text/plain; charset=utf-8", pv.Format())
}

func TestParamValueFormatQuotesSpecialCharacters(t *testing.T) {
	pv := NewParamValueWithParams("application/octet-stream", map[string]string{
		ParamFilename: "a report.txt",
	})
	assert.Equal(t, `application/octet-stream; filename="a report.txt"`, pv.Format())
}

func TestParamValueFormatRFC2231ForNonASCII(t *testing.T) {
	pv := NewParamValueWithParams("text/plain", map[string]string{ParamFilename: "café.txt"})
	out := pv.Format()
	assert.Contains(t, out, "filename*0*=utf-8''caf%C3%A9.txt")
}

func TestParamValueTypeAndSubtype(t *testing.T) {
	pv := NewParamValue("multipart/mixed")
	assert.Equal(t, "multipart", pv.Type())
	assert.Equal(t, "mixed", pv.Subtype())
}

func TestParamValueParseRoundTrip(t *testing.T) {
	pv, err := ParseParamValue(`text/plain; charset=utf-8`)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", pv.Value())
	assert.Equal(t, "utf-8", pv.Parameter("charset"))
}

func TestModifyParamValueClonesAndChanges(t *testing.T) {
	orig := NewParamValueWithParams("text/plain", map[string]string{"charset": "utf-8"})
	changed := ModifyParamValue(orig, ChangeValue("text/html"), SetParam("charset", "iso-8859-1"), DeleteParam("missing"))

	assert.Equal(t, "text/plain", orig.Value())
	assert.Equal(t, "utf-8", orig.Parameter("charset"))

	assert.Equal(t, "text/html", changed.Value())
	assert.Equal(t, "iso-8859-1", changed.Parameter("charset"))
}

func TestParamValueFoldsLongPlainASCIIValue(t *testing.T) {
	long := ""
	for i := 0; i < 120; i++ {
		long += "x"
	}
	pv := NewParamValueWithParams("text/plain", map[string]string{ParamFilename: long})
	out := pv.Format()
	assert.Contains(t, out, `filename*0="`)
	assert.Contains(t, out, `filename*1="`)
}
