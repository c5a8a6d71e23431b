package music

import "errors"

var (
	// ErrFetch reports that a music source could not be retrieved: HTTP
	// failure, unreachable host, missing file, or a context deadline or
	// cancellation during the transfer.
	ErrFetch = errors.New("music fetch failed")

	// ErrDecode reports that retrieved bytes could not be decoded by any
	// supported codec.
	ErrDecode = errors.New("music decode failed")
)
