// Package video extracts video identifiers from user-supplied links.
package video

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLink is returned when a link carries no video identifier.
var ErrMalformedLink = errors.New("malformed video link")

const (
	idMarker    = "v="
	idDelimiter = "&"

	thumbnailURLTemplate = "http://img.youtube.com/vi/%s/0.jpg"
)

// ParseLink returns the substring after the first "v=" up to the next "&"
// or the end of the input. The identifier is returned as-is.
func ParseLink(raw string) (string, error) {
	_, rest, found := strings.Cut(raw, idMarker)
	if !found {
		return "", fmt.Errorf("%w: no %q parameter in %q", ErrMalformedLink, idMarker, raw)
	}

	id, _, _ := strings.Cut(rest, idDelimiter)
	if id == "" {
		return "", fmt.Errorf("%w: empty video id in %q", ErrMalformedLink, raw)
	}

	return id, nil
}

// ThumbnailURL returns the preview image URL for a video id.
func ThumbnailURL(id string) string {
	return fmt.Sprintf(thumbnailURLTemplate, id)
}

// WatchURL rebuilds a canonical watch link from a base such as
// "https://www.youtube.com/watch?v=".
func WatchURL(base, id string) string {
	return base + id
}
