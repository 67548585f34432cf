package header

import "errors"

// Errors returned while building or formatting a Header.
var (
	// ErrNoSuchField is returned by Header accessors when the named field
	// has not been set.
	ErrNoSuchField = errors.New("header: no such field")

	// ErrInvalidAddress is returned when a mailbox string cannot be parsed
	// because its local-part or domain is malformed.
	ErrInvalidAddress = errors.New("header: invalid address")

	// ErrInvalidDomain is returned when a mailbox's domain fails IDNA
	// conversion to its ASCII form.
	ErrInvalidDomain = errors.New("header: invalid domain")

	// ErrHeaderTooLong is returned by Format when a header value contains
	// an unfoldable token that would exceed 998 octets.
	ErrHeaderTooLong = errors.New("header: field line too long to fold")

	// ErrUnknownValueShape is returned when a typed header value cannot be
	// rendered into field syntax.
	ErrUnknownValueShape = errors.New("header: value has no known rendering")

	// ErrEmptyMailboxList names the condition of a mailbox-list header
	// that requires at least one address being given zero addresses. No
	// function in this package returns it: the mailbox-list setters accept
	// an empty list and store an empty field body.
	ErrEmptyMailboxList = errors.New("header: mailbox list must not be empty")
)
