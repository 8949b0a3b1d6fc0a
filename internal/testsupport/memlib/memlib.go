// Package memlib provides an in-memory track library for tests.
package memlib

import (
	"context"
	"fmt"
	"sync"

	"amutils/internal/library"
)

var _ library.Repository = (*Library)(nil)

// Library keeps tracks in enumeration order.
type Library struct {
	mu      sync.Mutex
	entries []library.TrackEntry
	updates int
}

// New seeds a library with tracks.
func New(tracks ...library.Track) *Library {
	l := &Library{}
	for _, track := range tracks {
		l.entries = append(l.entries, library.TrackEntry{Track: track})
	}
	return l
}

// AddBroken appends an entry whose properties cannot be read.
func (l *Library) AddBroken(id string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, library.TrackEntry{Track: library.Track{ID: id}, Err: err})
}

func (l *Library) ListTracks(context.Context) ([]library.TrackEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]library.TrackEntry(nil), l.entries...), nil
}

func (l *Library) UpdateTrack(_ context.Context, id string, fields library.Fields) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.entries[i].Track = fields.Apply(l.entries[i].Track)
		l.updates++
		return nil
	}
	return fmt.Errorf("update track %s: %w", id, library.ErrTrackNotFound)
}

func (l *Library) FindByExactName(_ context.Context, name string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.Err == nil && entry.Track.Name == name {
			return entry.Track.ID, true, nil
		}
	}
	return "", false, nil
}

// Track returns the current state of a readable track.
func (l *Library) Track(id string) (library.Track, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		return l.entries[i].Track, true
	}
	return library.Track{}, false
}

// Updates counts successful UpdateTrack calls.
func (l *Library) Updates() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updates
}

func (l *Library) index(id string) int {
	for i, entry := range l.entries {
		if entry.Err == nil && entry.Track.ID == id {
			return i
		}
	}
	return -1
}
