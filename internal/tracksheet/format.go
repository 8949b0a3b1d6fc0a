package tracksheet

import (
	"errors"
	"strings"
)

// ErrUnknownFormat reports a header that matches neither layout.
var ErrUnknownFormat = errors.New("unrecognised CSV header")

// Format identifies a CSV layout.
type Format string

const (
	// FormatStandard rows carry a library id and are updated directly.
	FormatStandard Format = "standard"
	// FormatMatched rows carry a file path and go through fuzzy matching.
	FormatMatched Format = "matched"
)

// Column names as they appear in headers.
const (
	ColID          = "id"
	ColName        = "name"
	ColAlbum       = "album"
	ColArtist      = "artist"
	ColPlayCount   = "play_count"
	ColIsFavorite  = "is_favorite"
	ColSHA256      = "sha256"
	ColFileDir     = "File Directory"
	ColTitle       = "Title"
	ColAlbumArtist = "Album Artist"
	ColDuration    = "Duration(s)"
)

// StandardHeader is the header written by the CSV exporter.
var StandardHeader = []string{ColID, ColName, ColAlbum, ColArtist, ColPlayCount, ColIsFavorite}

// header maps case-folded column names to their index.
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		key := columnKey(name)
		if _, dup := h[key]; dup || key == "" {
			continue
		}
		h[key] = i
	}
	return h
}

func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func (h header) has(name string) bool {
	_, ok := h[columnKey(name)]
	return ok
}

func (h header) cell(record []string, name string) string {
	idx, ok := h[columnKey(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// get returns a trimmed key or value cell.
func (h header) get(record []string, name string) string {
	return strings.TrimSpace(h.cell(record, name))
}

// text returns a name cell verbatim. Whitespace-only cells count as unset.
func (h header) text(record []string, name string) string {
	v := h.cell(record, name)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// DetectFormat selects the layout from a header record. The standard layout
// wins when both key columns are present.
func DetectFormat(record []string) (Format, error) {
	h := newHeader(record)
	switch {
	case h.has(ColID):
		return FormatStandard, nil
	case h.has(ColFileDir):
		return FormatMatched, nil
	default:
		return "", ErrUnknownFormat
	}
}
