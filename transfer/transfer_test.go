package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwidger/go-mail/transfer"
)

func encodeAll(t *testing.T, enc transfer.Encoder, chunks ...string) string {
	t.Helper()

	var out []byte
	for _, c := range chunks {
		b, err := enc.Encode([]byte(c))
		require.NoError(t, err)
		out = append(out, b...)
	}
	b, err := enc.Flush()
	require.NoError(t, err)
	out = append(out, b...)
	return string(out)
}

func TestSevenBitEncoder(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)

	out, err := enc.Encode([]byte("Hello, world!"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", string(out))

	enc, err = transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("Hello, мир!"))
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)

	enc, err = transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte{'a', 0x00, 'b'})
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)
}

func TestSevenBitEncoderRejectsBareCR(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("one\rtwo"))
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)
}

func TestSevenBitEncoderRejectsBareLF(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("one\ntwo"))
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)
}

func TestSevenBitEncoderAcceptsCRLF(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	out, err := enc.Encode([]byte("one\r\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo", string(out))
}

func TestSevenBitEncoderRejectsTrailingBareCRAtFlush(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("one\r"))
	require.NoError(t, err)
	_, err = enc.Flush()
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)
}

func TestSevenBitEncoderAcceptsCRLFSplitAcrossChunks(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.SevenBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("one\r"))
	require.NoError(t, err)
	out, err := enc.Encode([]byte("\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, "\ntwo", string(out))
	_, err = enc.Flush()
	require.NoError(t, err)
}

func TestEightBitEncoderRejectsBareCR(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.EightBit)
	require.NoError(t, err)
	_, err = enc.Encode([]byte("Hello, мир!\rbye"))
	assert.ErrorIs(t, err, transfer.ErrBodyViolatesEncoding)
}

func TestEightBitEncoderAllowsNUL(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.EightBit)
	require.NoError(t, err)
	out, err := enc.Encode([]byte{'a', 0x00, 'b'})
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0x00, 'b'}, out)
}

func TestEightBitEncoder(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.EightBit)
	require.NoError(t, err)

	out, err := enc.Encode([]byte("Hello, мир!"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, мир!", string(out))
}

func TestBinaryEncoder(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.Binary)
	require.NoError(t, err)

	out, err := enc.Encode([]byte{0x00, 0xff, '\n', '\n', '\n'})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, '\n', '\n', '\n'}, out)
}

func TestQuotedPrintableEncoder(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.QuotedPrintable)
	require.NoError(t, err)

	out := encodeAll(t, enc, "Привет, мир!")
	assert.Equal(t, "=D0=9F=D1=80=D0=B8=D0=B2=D0=B5=D1=82, =D0=BC=D0=B8=D1=80!", out)
}

func TestQuotedPrintableEncoderWrapsLongLines(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.QuotedPrintable)
	require.NoError(t, err)

	out := encodeAll(t, enc, "Текст письма в уникоде")
	assert.Equal(t, "=D0=A2=D0=B5=D0=BA=D1=81=D1=82 =D0=BF=D0=B8=D1=81=D1=8C=D0=BC=D0=B0 =D0=B2 =\r\n=D1=83=D0=BD=D0=B8=D0=BA=D0=BE=D0=B4=D0=B5", out)
}

func TestBase64Encoder(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.Base64)
	require.NoError(t, err)

	out, err := enc.Encode([]byte("Привет, мир!"))
	require.NoError(t, err)
	assert.Equal(t, "0J/RgNC40LLQtdGCLCDQvNC40YAh", string(out))
}

func TestBase64EncoderWrapsLongLines(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.Base64)
	require.NoError(t, err)

	out, err := enc.Encode([]byte("Текст письма в уникоде подлиннее"))
	require.NoError(t, err)
	assert.Equal(t,
		"0KLQtdC60YHRgiDQv9C40YHRjNC80LAg0LIg0YPQvdC40LrQvtC00LUg0L/QvtC00LvQuNC90L3Q\r\ntdC1",
		string(out))
}

func TestBase64EncoderCarriesPartialGroupsAcrossChunks(t *testing.T) {
	enc, err := transfer.NewEncoder(transfer.Base64)
	require.NoError(t, err)

	full := encodeAll(t, enc, "Привет, мир!")

	enc2, err := transfer.NewEncoder(transfer.Base64)
	require.NoError(t, err)
	raw := []byte("Привет, мир!")
	var split string
	for _, b := range raw {
		out, err := enc2.Encode([]byte{b})
		require.NoError(t, err)
		split += string(out)
	}
	flushed, err := enc2.Flush()
	require.NoError(t, err)
	split += string(flushed)

	assert.Equal(t, full, split)
}

func TestNewEncoderUnknown(t *testing.T) {
	_, err := transfer.NewEncoder("quoted-unprintable")
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)
}
