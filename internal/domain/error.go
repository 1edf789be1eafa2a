package domain

import "errors"

var (
	// ErrNoProfile means the lifecycle resource needed to decode could not be
	// constructed. Fatal to the current payload only.
	ErrNoProfile = errors.New("profile unavailable")

	// ErrDecodeTimeout means the hard deadline elapsed before the decoder
	// resolved.
	ErrDecodeTimeout = errors.New("decode deadline exceeded")
)

// DecodeErrorKind classifies a decode failure for diagnostics.
type DecodeErrorKind string

const (
	DecodeNoProfile DecodeErrorKind = "no-profile"
	DecodeTimeout   DecodeErrorKind = "timeout"
	DecodeOther     DecodeErrorKind = "other"
)

// ClassifyDecodeError maps any decode-path error onto the three-kind taxonomy.
func ClassifyDecodeError(err error) DecodeErrorKind {
	switch {
	case errors.Is(err, ErrNoProfile):
		return DecodeNoProfile
	case errors.Is(err, ErrDecodeTimeout):
		return DecodeTimeout
	default:
		return DecodeOther
	}
}
