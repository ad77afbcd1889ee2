package document

import "errors"

var (
	// ErrMalformedMarker reports an HTML comment that looks like an id
	// marker but carries no extractable id.
	ErrMalformedMarker = errors.New("malformed id marker")

	// ErrUnmatchedClose reports a close marker whose id has no
	// corresponding open marker.
	ErrUnmatchedClose = errors.New("unmatched close marker")

	// ErrTargetNotFound reports a replacement id that matches no
	// addressable block.
	ErrTargetNotFound = errors.New("target block not found")
)
