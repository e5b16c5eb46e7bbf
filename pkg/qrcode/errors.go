package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content is empty or only whitespace.
	ErrEmptyContent = errors.New("qrcode: content cannot be empty")
	// ErrEncode is returned when the payload cannot be encoded.
	ErrEncode = errors.New("qrcode: failed to encode")
)
