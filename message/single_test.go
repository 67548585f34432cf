package message

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinglePartPlainTextRoundTrip(t *testing.T) {
	sp := NewSinglePartBuilder().
		QuotedPrintable().
		ContentType("text/plain").
		Body(TextPayload("hello world"))

	out, err := sp.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, "Content-Transfer-Encoding: quoted-printable\r\nContent-Type: text/plain\r\n\r\nhello world", string(out))
}

func TestSinglePartHeaderNotOverwrittenByBuilder(t *testing.T) {
	sp := NewSinglePartBuilder().
		QuotedPrintable().
		ContentType("text/plain").
		Header("Content-Transfer-Encoding", "base64").
		Body(TextPayload("hello"))

	out, err := sp.ToBytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Content-Transfer-Encoding: base64")
	assert.Contains(t, string(out), "aGVsbG8=")
}

func TestSinglePartStreamMatchesToBytes(t *testing.T) {
	sp := NewSinglePartBuilder().
		Base64().
		ContentType("application/octet-stream").
		Body(BytesPayload([]byte("the quick brown fox")))

	eager, err := sp.ToBytes()
	require.NoError(t, err)

	s := sp.Stream()
	var streamed []byte
	for {
		chunk, err := s.Next()
		streamed = append(streamed, chunk...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, eager, streamed)
}

func TestSinglePartWithNoPayloadStillFlushes(t *testing.T) {
	sp := NewSinglePartBuilder().SevenBit().ContentType("text/plain").Body(nil)
	out, err := sp.ToBytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Content-Type: text/plain")
}
