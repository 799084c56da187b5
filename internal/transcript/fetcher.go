package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fetch calls the caption source once and joins the fragment texts.
func (f *implFetcher) Fetch(ctx context.Context, videoID string) (Transcript, error) {
	startTime := time.Now()
	f.logger.Info(ctx, "Fetching captions: %s", videoID)

	fragments, err := f.source.Fragments(ctx, videoID)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: video %s: %w", ErrUnavailable, videoID, err)
	}
	if len(fragments) == 0 {
		return Transcript{}, fmt.Errorf("%w: video %s: %w", ErrUnavailable, videoID, ErrNoCaptions)
	}

	t := Transcript{
		VideoID:   videoID,
		Fragments: fragments,
		Text:      Join(fragments),
	}

	f.logger.Info(ctx, "Captions fetched: %d fragments, %d chars in %s", len(fragments), len(t.Text), time.Since(startTime))
	return t, nil
}

// Join concatenates fragment texts with single spaces, dropping timing.
func Join(fragments []Fragment) string {
	texts := make([]string, len(fragments))
	for i, fr := range fragments {
		texts[i] = fr.Text
	}
	return strings.Join(texts, " ")
}
