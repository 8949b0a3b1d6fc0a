package replace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.senan.xyz/taglib"
)

// AudioExt is the extension of files picked up from a folder.
const AudioExt = ".m4a"

// Song is an audio file and the tags that identify it in the library.
type Song struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// TagReader reads the tags of an audio file.
type TagReader func(path string) (map[string][]string, error)

// ReadSong reads the identifying tags of path. The title falls back to the
// file name without its extension when the tag is missing or unreadable.
func ReadSong(path string, read TagReader) (Song, error) {
	if read == nil {
		read = taglib.ReadTags
	}
	song := Song{Path: path}
	tags, err := read(path)
	if err == nil {
		song.Title = firstTag(tags, taglib.Title)
		song.Artist = firstTag(tags, taglib.Artist)
		song.Album = firstTag(tags, taglib.Album)
	}
	if song.Title == "" {
		base := filepath.Base(path)
		song.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return song, err
}

func firstTag(tags map[string][]string, key string) string {
	for _, v := range tags[key] {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Discover returns target itself when it is a file, or the .m4a files
// directly inside it, sorted by name, when it is a directory.
func Discover(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("replace target: %w", err)
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), AudioExt) {
			continue
		}
		files = append(files, filepath.Join(target, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
