package tracksheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"amutils/internal/library"
)

// Row is one parsed data record. Optional values are nil or empty when the
// cell was blank or could not be parsed.
type Row struct {
	// Line is the 1-based line of the record in the decoded file.
	Line int

	ID   string
	Path string

	Name        string
	Album       string
	Artist      string
	AlbumArtist string
	PlayCount   *int
	Favorite    *bool
	SHA256      string

	Duration    float64
	HasDuration bool
}

// Fields returns the partial update carried by the row. Empty strings are
// treated as unset.
func (r Row) Fields() library.Fields {
	var f library.Fields
	if r.Name != "" {
		f.Name = stringPtr(r.Name)
	}
	if r.Album != "" {
		f.Album = stringPtr(r.Album)
	}
	if r.Artist != "" {
		f.Artist = stringPtr(r.Artist)
	}
	if r.AlbumArtist != "" {
		f.AlbumArtist = stringPtr(r.AlbumArtist)
	}
	if r.PlayCount != nil {
		v := *r.PlayCount
		f.PlayCount = &v
	}
	if r.Favorite != nil {
		v := *r.Favorite
		f.Favorite = &v
	}
	return f
}

func stringPtr(s string) *string { return &s }

// Sheet is a decoded CSV file.
type Sheet struct {
	Source   string
	Encoding string
	Format   Format
	Rows     []Row
}

// ReadFile reads and parses the CSV file at path.
func ReadFile(path string, encodings []string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sheet, err := Parse(data, encodings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sheet.Source = path
	return sheet, nil
}

// Parse decodes data with the first workable encoding, detects the layout
// from the header, and parses every data record.
func Parse(data []byte, encodings []string) (*Sheet, error) {
	text, used, err := Decode(data, encodings)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	format, err := DetectFormat(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.Join(record, ","))
	}
	cols := newHeader(record)

	sheet := &Sheet{Encoding: used, Format: format}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if blankRecord(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		sheet.Rows = append(sheet.Rows, parseRecord(format, cols, record, line))
	}
	return sheet, nil
}

func parseRecord(format Format, cols header, record []string, line int) Row {
	row := Row{Line: line}
	switch format {
	case FormatStandard:
		row.ID = cols.get(record, ColID)
		row.Name = cols.text(record, ColName)
		row.SHA256 = cols.get(record, ColSHA256)
	case FormatMatched:
		row.Path = cols.get(record, ColFileDir)
		row.Name = cols.text(record, ColTitle)
		row.AlbumArtist = cols.text(record, ColAlbumArtist)
		row.Duration, row.HasDuration = ParseDuration(cols.get(record, ColDuration))
	}
	row.Album = cols.text(record, ColAlbum)
	row.Artist = cols.text(record, ColArtist)
	if n, ok := ParsePlayCount(cols.get(record, ColPlayCount)); ok {
		row.PlayCount = &n
	}
	if b, ok := ParseBool(cols.get(record, ColIsFavorite)); ok {
		row.Favorite = &b
	}
	return row
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
