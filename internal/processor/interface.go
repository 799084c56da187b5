package processor

import (
	"context"

	"github.com/nguyentantai21042004/tube-notes/internal/transcript"
)

// Processor turns one video link into notes.
type Processor interface {
	Process(ctx context.Context, link string) (Result, error)
}

// Result is the outcome of one Process call. On error it carries whatever
// was produced before the failing step.
type Result struct {
	VideoID      string
	ThumbnailURL string
	Transcript   transcript.Transcript
	Summary      string
}
