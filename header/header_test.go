package header

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSetReplacesExisting(t *testing.T) {
	var h Header
	h.Set("Subject", "first")
	h.Set("Subject", "second")
	body, ok := h.Get("Subject")
	require.True(t, ok)
	assert.Equal(t, "second", body)
	assert.Equal(t, 1, h.Len())
}

func TestHeaderSetCollapsesDuplicates(t *testing.T) {
	var h Header
	h.Add("Received", "one")
	h.Add("Received", "two")
	h.Set("Received", "three")
	assert.Equal(t, []string{"three"}, h.GetAll("Received"))
}

func TestHeaderAddIsRepeatable(t *testing.T) {
	var h Header
	h.Add("Comments", "one")
	h.Add("Comments", "two")
	assert.Equal(t, []string{"one", "two"}, h.GetAll("Comments"))
}

func TestHeaderSetAllResizes(t *testing.T) {
	var h Header
	h.SetAll("Received", "a", "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, h.GetAll("Received"))

	h.SetAll("Received", "x")
	assert.Equal(t, []string{"x"}, h.GetAll("Received"))

	h.SetAll("Received", "x", "y", "z")
	assert.Equal(t, []string{"x", "y", "z"}, h.GetAll("Received"))
}

func TestHeaderDel(t *testing.T) {
	var h Header
	h.Set("Subject", "hi")
	h.Del("Subject")
	_, ok := h.Get("Subject")
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHeaderGetIsCaseInsensitive(t *testing.T) {
	var h Header
	h.Set("subject", "hi")
	body, ok := h.Get("SUBJECT")
	require.True(t, ok)
	assert.Equal(t, "hi", body)
}

func TestHeaderCloneIsIndependent(t *testing.T) {
	var h Header
	h.Set("Subject", "hi")
	clone := h.Clone()
	clone.Set("Subject", "bye")
	body, _ := h.Get("Subject")
	assert.Equal(t, "hi", body)
	cloneBody, _ := clone.Get("Subject")
	assert.Equal(t, "bye", cloneBody)
}

func TestHeaderFormatPreservesOrderAndBlankLine(t *testing.T) {
	var h Header
	h.Set("From", "a@domain.tld")
	h.Set("Subject", "hi")
	out, err := h.Format()
	require.NoError(t, err)
	assert.Equal(t, "From: a@domain.tld\r\nSubject: hi\r\n\r\n", string(out))
}

func TestHeaderFormatRejectsBareNewline(t *testing.T) {
	var h Header
	h.Add("X-Injected", "value\nEvil-Header: oops")
	_, err := h.Format()
	assert.ErrorIs(t, err, ErrUnknownValueShape)
}

func TestHeaderFormatRejectsUnfoldableOverlongField(t *testing.T) {
	var h Header
	h.Add("Message-ID", "<"+strings.Repeat("x", 1000)+"@domain.tld>")
	_, err := h.Format()
	assert.ErrorIs(t, err, ErrHeaderTooLong)
}

func TestHeaderFormatFoldsLongMailboxList(t *testing.T) {
	var h Header
	addrs := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		addrs = append(addrs, "someone-with-a-longish-name@sub.domain.tld")
	}
	h.Set("To", strings.Join(addrs, ", "))
	out, err := h.Format()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(out), "\r\n\r\n"), "\r\n")
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 998)
	}
	assert.Greater(t, len(lines), 1)
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, " "))
	}
}

func TestHeaderDateRoundTrip(t *testing.T) {
	var h Header
	when := time.Date(2024, time.March, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))
	h.SetDate(when)
	got, err := h.GetDate()
	require.NoError(t, err)
	assert.True(t, when.Equal(got))
}

func TestHeaderGetDateMissing(t *testing.T) {
	var h Header
	_, err := h.GetDate()
	assert.ErrorIs(t, err, ErrNoSuchField)
}

func TestHeaderSubjectEncodesNonASCII(t *testing.T) {
	var h Header
	h.SetSubject("héllo")
	body, err := h.GetSubject()
	require.NoError(t, err)
	assert.Contains(t, body, "=?utf-8?")
}

func TestHeaderMailboxListAccessors(t *testing.T) {
	var h Header
	h.SetTo(NewMailbox("", "a", "domain.tld"), NewMailbox("", "b", "domain.tld"))
	list, err := h.GetTo()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Local)
	assert.Equal(t, "b", list[1].Local)
}

func TestHeaderSenderIsSingleMailbox(t *testing.T) {
	var h Header
	h.SetSender(NewMailbox("Agent", "agent", "domain.tld"))
	mb, err := h.GetSender()
	require.NoError(t, err)
	assert.Equal(t, "Agent", mb.Name)
}

func TestHeaderMessageIDWrapsAndUnwraps(t *testing.T) {
	var h Header
	h.SetMessageID("abc123@domain.tld")
	body, _ := h.Get("Message-ID")
	assert.Equal(t, "<abc123@domain.tld>", body)

	id, err := h.GetMessageID()
	require.NoError(t, err)
	assert.Equal(t, "abc123@domain.tld", id)
}

func TestHeaderReferencesChain(t *testing.T) {
	var h Header
	h.SetReferences("first@domain.tld", "second@domain.tld")
	ids, err := h.GetReferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"first@domain.tld", "second@domain.tld"}, ids)
}

func TestHeaderKeywords(t *testing.T) {
	var h Header
	h.SetKeywords("one", "two", "three")
	kws, err := h.GetKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, kws)
}

func TestHeaderCommentsAreRepeatable(t *testing.T) {
	var h Header
	h.AddComment("first")
	h.AddComment("second")
	assert.Equal(t, []string{"first", "second"}, h.GetComments())
}

func TestHeaderContentTypeRoundTrip(t *testing.T) {
	var h Header
	h.SetContentType(NewParamValueWithParams("text/plain", map[string]string{"charset": "utf-8"}))
	pv, err := h.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "text", pv.Type())
	assert.Equal(t, "plain", pv.Subtype())
	assert.Equal(t, "utf-8", pv.Parameter("charset"))
}

func TestHeaderContentDispositionRoundTrip(t *testing.T) {
	var h Header
	h.SetContentDisposition(NewParamValueWithParams("attachment", map[string]string{"filename": "a.txt"}))
	pv, err := h.GetContentDisposition()
	require.NoError(t, err)
	assert.Equal(t, "attachment", pv.Value())
	assert.Equal(t, "a.txt", pv.Parameter("filename"))
}

func TestHeaderContentTransferEncodingRoundTrip(t *testing.T) {
	var h Header
	h.SetContentTransferEncoding("quoted-printable")
	enc, err := h.GetContentTransferEncoding()
	require.NoError(t, err)
	assert.Equal(t, "quoted-printable", enc)
}

func TestHeaderMIMEVersionRoundTrip(t *testing.T) {
	var h Header
	_, err := h.GetMIMEVersion()
	assert.ErrorIs(t, err, ErrNoSuchField)

	h.SetMIMEVersion("1.0")
	v, err := h.GetMIMEVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)
}

func TestHeaderContentIDWrapsAndUnwraps(t *testing.T) {
	var h Header
	h.SetContentID("part1@domain.tld")
	body, _ := h.Get("Content-ID")
	assert.Equal(t, "<part1@domain.tld>", body)
	id, err := h.GetContentID()
	require.NoError(t, err)
	assert.Equal(t, "part1@domain.tld", id)
}
