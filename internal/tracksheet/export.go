package tracksheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"amutils/internal/library"
)

// DefaultExportName is used when the export target is a directory.
const DefaultExportName = "tracks_export.csv"

// ExportPath resolves the CSV export target. Anything that does not end in
// .csv is treated as a directory.
func ExportPath(target string) string {
	if strings.EqualFold(filepath.Ext(target), ".csv") {
		return target
	}
	return filepath.Join(target, DefaultExportName)
}

// PathListPath appends .txt when target lacks it.
func PathListPath(target string) string {
	if strings.HasSuffix(target, ".txt") {
		return target
	}
	return target + ".txt"
}

// WriteStandard writes tracks as a UTF-8 standard CSV with a byte order mark.
func WriteStandard(w io.Writer, tracks []library.Track) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(StandardHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range tracks {
		record := []string{
			t.ID,
			t.Name,
			t.Album,
			t.Artist,
			strconv.Itoa(t.PlayCount),
			strconv.FormatBool(t.Favorite),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write track %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePathList writes one "path | name | artist" line per track that has a
// file path, sorted by path, after a three line comment header. It returns
// the number of tracks written.
func WritePathList(w io.Writer, tracks []library.Track) (int, error) {
	withPaths := make([]library.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.FilePath != "" {
			withPaths = append(withPaths, t)
		}
	}
	sort.SliceStable(withPaths, func(i, j int) bool {
		return withPaths[i].FilePath < withPaths[j].FilePath
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Music library file paths")
	fmt.Fprintf(bw, "# Total: %d files\n", len(withPaths))
	fmt.Fprint(bw, "# Format: path | name | artist\n\n")
	for _, t := range withPaths {
		fmt.Fprintf(bw, "%s | %s | %s\n", t.FilePath, t.Name, t.Artist)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("write path list: %w", err)
	}
	return len(withPaths), nil
}
