package frame

import "errors"

var (
	// ErrTimestampNotFound indicates the seek landed outside the
	// playable range or the decode produced no frame.
	ErrTimestampNotFound = errors.New("timestamp not found")

	// ErrIO indicates the media file could not be opened at all.
	// Fatal for the item it belongs to.
	ErrIO = errors.New("media unreadable")
)
