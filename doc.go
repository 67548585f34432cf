// Package mail provides a strongly typed way to compose and serialize
// Internet email messages (RFC 5322 headers, RFC 2045-2049 MIME bodies).
//
// The library is write-only: it builds messages, it does not parse them.
// A message is represented as a tree of message.Part values rooted at a
// message.Message, and can be rendered either all at once with ToBytes or
// incrementally with Stream, which emits the same bytes as a sequence of
// chunks without ever materializing the whole message in memory.
//
// The header package provides the typed, ordered header collection and the
// address, encoded-word and parameter-value machinery that headers are
// built from. The transfer package implements the Content-transfer-encoding
// codecs. The boundary package generates multipart boundary tokens. The
// message package ties these together into the part tree and its builders.
package mail
