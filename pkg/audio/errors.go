package audio

import "errors"

var (
	// ErrMalformedEncoding reports a speech payload that is not valid base64
	// or does not contain whole 16-bit samples.
	ErrMalformedEncoding = errors.New("malformed speech encoding")

	// ErrContractViolation reports an invalid channel count, sample rate, or
	// gain passed by the caller. It indicates a caller bug, not a condition a
	// user can recover from.
	ErrContractViolation = errors.New("audio contract violation")
)
