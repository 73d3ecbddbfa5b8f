package request

import "errors"

var (
	// ErrSpecCount rejects a request with zero brackets or more than
	// the configured maximum.
	ErrSpecCount = errors.New("invalid spec count")

	// ErrQuoteUnsupported rejects quote brackets aimed at media kinds
	// that carry no subtitle track.
	ErrQuoteUnsupported = errors.New("quotes unsupported for this media")

	// ErrInvalidSpec rejects a bracket that cannot be parsed.
	ErrInvalidSpec = errors.New("invalid spec")
)
