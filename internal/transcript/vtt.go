package transcript

import (
	"bufio"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Matches "00:00:00.160 --> 00:00:02.350" with optional hours and cue settings after it.
	reCueTiming = regexp.MustCompile(`((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})\s+-->\s+((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})`)
	reCueTag    = regexp.MustCompile(`<[^>]*>`)
)

// ParseVTT turns WebVTT cues into fragments. Auto-generated tracks repeat the
// previous line at the top of each cue; a line equal to the last emitted line
// is dropped, and cues left with no text are skipped.
func ParseVTT(content string) ([]Fragment, error) {
	var fragments []Fragment
	var lastLine string

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		m := reCueTiming.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		start, err1 := parseCueTime(m[1])
		end, err2 := parseCueTime(m[2])
		if err1 != nil || err2 != nil {
			continue
		}

		var textLines []string
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			clean := strings.TrimSpace(html.UnescapeString(reCueTag.ReplaceAllString(line, "")))
			if clean == "" || clean == lastLine {
				continue
			}
			textLines = append(textLines, clean)
			lastLine = clean
		}

		if len(textLines) == 0 {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     strings.Join(textLines, " "),
			Start:    start,
			Duration: end - start,
		})
	}

	return fragments, scanner.Err()
}

// parseCueTime parses "HH:MM:SS.mmm" or "MM:SS.mmm".
func parseCueTime(s string) (time.Duration, error) {
	clock, millis, _ := strings.Cut(s, ".")
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	var secs int
	for _, p := range strings.Split(clock, ":") {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		secs = secs*60 + n
	}

	return time.Duration(secs)*time.Second + time.Duration(ms)*time.Millisecond, nil
}
