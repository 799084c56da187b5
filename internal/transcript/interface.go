package transcript

import (
	"context"
	"time"
)

// Fragment is one timed caption unit.
type Fragment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Transcript is the caption text of one video. Text holds every fragment's
// text in order, joined with single spaces.
type Transcript struct {
	VideoID   string
	Fragments []Fragment
	Text      string
}

// Fetcher retrieves the transcript of a video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (Transcript, error)
}

// Source is an external caption service returning ordered fragments.
type Source interface {
	Fragments(ctx context.Context, videoID string) ([]Fragment, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, videoID string) ([]Fragment, error)

func (f SourceFunc) Fragments(ctx context.Context, videoID string) ([]Fragment, error) {
	return f(ctx, videoID)
}
