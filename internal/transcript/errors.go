package transcript

import "errors"

var (
	// ErrUnavailable wraps every failure to obtain a transcript.
	ErrUnavailable = errors.New("transcript unavailable")

	ErrNoCaptions   = errors.New("no captions available")
	ErrRegionLocked = errors.New("video is not available in this region")
)
