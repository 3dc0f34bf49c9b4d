package extract

import "errors"

var (
	// ErrUnsupportedType indicates the file extension has no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrUnreadable indicates the file could not be opened or read.
	ErrUnreadable = errors.New("file unreadable")

	// ErrCorrupt indicates the file content did not match its format.
	ErrCorrupt = errors.New("corrupt document")

	// ErrToolFailed indicates an external conversion tool failed.
	ErrToolFailed = errors.New("conversion tool failed")
)
