package library

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrTrackNotFound reports that no library track carries the requested id.
var ErrTrackNotFound = errors.New("track not found")

// Track is one library track as reported by the repository.
type Track struct {
	ID          string
	Name        string
	Artist      string
	Album       string
	AlbumArtist string
	Duration    float64
	FilePath    string
	PlayCount   int
	Favorite    bool
}

// TrackEntry is the per-track result of an enumeration. Err is set when the
// track could not be read; Track then carries whatever identity was recovered.
type TrackEntry struct {
	Track Track
	Err   error
}

// Fields is a partial update. Nil members are left unchanged.
type Fields struct {
	Name        *string
	Album       *string
	Artist      *string
	AlbumArtist *string
	PlayCount   *int
	Favorite    *bool
}

// IsEmpty reports whether the update would change nothing.
func (f Fields) IsEmpty() bool {
	return f.Name == nil && f.Album == nil && f.Artist == nil && f.AlbumArtist == nil &&
		f.PlayCount == nil && f.Favorite == nil
}

// Apply returns a copy of track with the set fields written.
func (f Fields) Apply(track Track) Track {
	if f.Name != nil {
		track.Name = *f.Name
	}
	if f.Album != nil {
		track.Album = *f.Album
	}
	if f.Artist != nil {
		track.Artist = *f.Artist
	}
	if f.AlbumArtist != nil {
		track.AlbumArtist = *f.AlbumArtist
	}
	if f.PlayCount != nil {
		track.PlayCount = *f.PlayCount
	}
	if f.Favorite != nil {
		track.Favorite = *f.Favorite
	}
	return track
}

// Names lists the set fields in a stable order for logging.
func (f Fields) Names() []string {
	var names []string
	if f.Name != nil {
		names = append(names, "name")
	}
	if f.Album != nil {
		names = append(names, "album")
	}
	if f.Artist != nil {
		names = append(names, "artist")
	}
	if f.AlbumArtist != nil {
		names = append(names, "album_artist")
	}
	if f.PlayCount != nil {
		names = append(names, "play_count")
	}
	if f.Favorite != nil {
		names = append(names, "favorite")
	}
	return names
}

// String renders the set fields as key=value pairs.
func (f Fields) String() string {
	parts := make([]string, 0, 6)
	if f.Name != nil {
		parts = append(parts, "name="+strconv.Quote(*f.Name))
	}
	if f.Album != nil {
		parts = append(parts, "album="+strconv.Quote(*f.Album))
	}
	if f.Artist != nil {
		parts = append(parts, "artist="+strconv.Quote(*f.Artist))
	}
	if f.AlbumArtist != nil {
		parts = append(parts, "album_artist="+strconv.Quote(*f.AlbumArtist))
	}
	if f.PlayCount != nil {
		parts = append(parts, "play_count="+strconv.Itoa(*f.PlayCount))
	}
	if f.Favorite != nil {
		parts = append(parts, "favorite="+strconv.FormatBool(*f.Favorite))
	}
	return strings.Join(parts, " ")
}

// Repository is the track store the import pipeline reads from and writes to.
type Repository interface {
	ListTracks(ctx context.Context) ([]TrackEntry, error)
	UpdateTrack(ctx context.Context, id string, fields Fields) error
	FindByExactName(ctx context.Context, name string) (string, bool, error)
}

// Tracks returns the readable tracks of entries in enumeration order.
func Tracks(entries []TrackEntry) []Track {
	tracks := make([]Track, 0, len(entries))
	for _, entry := range entries {
		if entry.Err != nil {
			continue
		}
		tracks = append(tracks, entry.Track)
	}
	return tracks
}
