package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/video"
	"github.com/nguyentantai21042004/tube-notes/pkg/executor"
)

// ytDlpSource downloads the caption track with yt-dlp and parses the VTT file.
type ytDlpSource struct {
	binary   string
	language string
	watchURL string
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

func (s *ytDlpSource) Fragments(ctx context.Context, videoID string) ([]Fragment, error) {
	// Isolated dir per request so concurrent downloads never see each other's files
	dir, err := os.MkdirTemp(s.tempDir, "captions-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-sub",
		"--write-auto-sub",
		"--sub-lang", s.language,
		"--sub-format", "vtt",
		"--no-warnings",
		"-o", "%(id)s.%(ext)s",
		video.WatchURL(s.watchURL, videoID),
	}

	s.logger.Debug(ctx, "yt-dlp in dir %s: %s %v", dir, s.binary, args)

	if _, err := s.executor.ExecuteInDir(ctx, dir, s.binary, args...); err != nil {
		return nil, fmt.Errorf("yt-dlp captions: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return nil, fmt.Errorf("find caption file: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNoCaptions
	}
	sort.Strings(matches)

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("read caption file: %w", err)
	}

	return ParseVTT(string(data))
}
