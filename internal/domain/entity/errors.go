package entity

import "errors"

// Error kinds surfaced by the pipeline. main maps them to exit codes.
var (
	// ErrValidation covers malformed arguments: bad timecodes, inverted
	// ranges, bad flag values. Raised before any network or file activity.
	ErrValidation = errors.New("validation error")

	// ErrDownload covers unreachable URLs and failed transfers.
	ErrDownload = errors.New("download error")

	// ErrDecode covers files ffmpeg cannot open or ranges that yield no frames.
	ErrDecode = errors.New("decode error")
)
