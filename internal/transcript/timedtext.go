package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/video"
)

// captionTracksMarker precedes the caption track list embedded in the
// watch page's player response.
const captionTracksMarker = `"captionTracks":`

// timedTextSource reads captions the way a browser does: it loads the watch
// page, picks a track from the player response, then fetches that track's
// signed timedtext URL, which serves
//
//	<transcript><text start="0.5" dur="2.1">hello</text>...</transcript>
type timedTextSource struct {
	watchURL  string
	language  string
	userAgent string
	client    *http.Client
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedTextDoc struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextItem `xml:"text"`
}

type timedTextItem struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

func (s *timedTextSource) Fragments(ctx context.Context, videoID string) ([]Fragment, error) {
	pageURL := video.WatchURL(s.watchURL, videoID)

	page, err := s.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("load watch page: %w", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, s.language)
	if !ok {
		return nil, fmt.Errorf("%w: no %q track", ErrNoCaptions, s.language)
	}

	trackURL, err := resolveTrackURL(pageURL, track.BaseURL)
	if err != nil {
		return nil, err
	}

	body, err := s.get(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("request captions: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoCaptions
	}

	return parseTimedText(body)
}

func (s *timedTextSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept-Language", s.language)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnavailableForLegalReasons:
		return nil, ErrRegionLocked
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoCaptions
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("caption service returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// parseCaptionTracks decodes the JSON array that follows "captionTracks": in
// the watch page. A page without the marker has captions disabled.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	idx := bytes.Index(page, []byte(captionTracksMarker))
	if idx < 0 {
		return nil, fmt.Errorf("%w: captions are disabled for this video", ErrNoCaptions)
	}

	var tracks []captionTrack
	dec := json.NewDecoder(bytes.NewReader(page[idx+len(captionTracksMarker):]))
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}
	return tracks, nil
}

// pickTrack prefers an exact language match, then a regional variant
// ("en-GB" for "en"). Manual tracks win over auto-generated ones.
func pickTrack(tracks []captionTrack, language string) (captionTrack, bool) {
	matchers := []func(string) bool{
		func(code string) bool { return strings.EqualFold(code, language) },
		func(code string) bool { return strings.HasPrefix(strings.ToLower(code), strings.ToLower(language)+"-") },
	}

	for _, match := range matchers {
		var generated *captionTrack
		for i, t := range tracks {
			if t.BaseURL == "" || !match(t.LanguageCode) {
				continue
			}
			if t.Kind != "asr" {
				return t, true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return captionTrack{}, false
}

func resolveTrackURL(pageURL, trackURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse watch url: %w", err)
	}
	ref, err := url.Parse(trackURL)
	if err != nil {
		return "", fmt.Errorf("parse track url: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

func parseTimedText(body []byte) ([]Fragment, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode captions: %w", err)
	}

	fragments := make([]Fragment, 0, len(doc.Texts))
	for _, item := range doc.Texts {
		fragments = append(fragments, Fragment{
			// Track bodies are HTML-escaped a second time inside the XML.
			Text:     html.UnescapeString(item.Body),
			Start:    parseSeconds(item.Start),
			Duration: parseSeconds(item.Dur),
		})
	}
	return fragments, nil
}

func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
