package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/video"
)

// Process runs link parsing, transcript fetching and summarization in order.
// A failed step stops the pipeline; the summarizer is never called without
// a transcript.
func (p *implProcessor) Process(ctx context.Context, link string) (Result, error) {
	startTime := time.Now()
	var res Result

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting notes for: %s", link)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract the video id
	videoID, err := video.ParseLink(link)
	if err != nil {
		p.logger.Warn(ctx, "Rejected link: %v", err)
		return res, fmt.Errorf("parse link: %w", err)
	}
	res.VideoID = videoID
	res.ThumbnailURL = video.ThumbnailURL(videoID)

	// Step 2: Fetch captions
	tr, err := p.fetcher.Fetch(ctx, videoID)
	if err != nil {
		p.logger.Warn(ctx, "Transcript failed for %s: %v", videoID, err)
		return res, fmt.Errorf("fetch transcript: %w", err)
	}
	res.Transcript = tr

	// Step 3: Summarize
	summary, err := p.summarizer.Summarize(ctx, tr.Text)
	if err != nil {
		return res, fmt.Errorf("summarize: %w", err)
	}
	res.Summary = summary

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Notes completed for %s in %s", videoID, time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}
