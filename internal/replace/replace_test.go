package replace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.senan.xyz/taglib"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/music"
)

type fakeLibrary struct {
	tracks   map[string]*music.TrackInfo
	findErr  error
	addErr   error
	dupErr   map[string]error
	calls    []string
	nextID   int
	restored map[string][2]any
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		tracks:   map[string]*music.TrackInfo{},
		dupErr:   map[string]error{},
		restored: map[string][2]any{},
	}
}

func (f *fakeLibrary) FindTrack(_ context.Context, name, artist, album string) (*music.TrackInfo, error) {
	f.calls = append(f.calls, fmt.Sprintf("find %s|%s|%s", name, artist, album))
	if f.findErr != nil {
		return nil, f.findErr
	}
	info, ok := f.tracks[name]
	if !ok {
		return nil, fmt.Errorf("track %q: %w", name, library.ErrTrackNotFound)
	}
	return info, nil
}

func (f *fakeLibrary) DeleteTrack(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}

func (f *fakeLibrary) AddFile(_ context.Context, path string) (string, error) {
	f.calls = append(f.calls, "add "+filepath.Base(path))
	if f.addErr != nil {
		return "", f.addErr
	}
	f.nextID++
	return fmt.Sprintf("NEW%d", f.nextID), nil
}

func (f *fakeLibrary) RestoreTrack(_ context.Context, id string, playCount int, favorite bool) error {
	f.calls = append(f.calls, "restore "+id)
	f.restored[id] = [2]any{playCount, favorite}
	return nil
}

func (f *fakeLibrary) DuplicateToPlaylist(_ context.Context, id, playlistID string) error {
	f.calls = append(f.calls, "dup "+id+" "+playlistID)
	return f.dupErr[playlistID]
}

func stubTags(tags map[string]map[string][]string) TagReader {
	return func(path string) (map[string][]string, error) {
		t, ok := tags[filepath.Base(path)]
		if !ok {
			return nil, errors.New("unsupported file")
		}
		return t, nil
	}
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverFolderAndFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.m4a")
	touch(t, dir, "A.M4A")
	touch(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.m4a"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(dir, "A.M4A"), filepath.Join(dir, "b.m4a")}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}

	single := filepath.Join(dir, "notes.txt")
	files, err = Discover(single)
	if err != nil || len(files) != 1 || files[0] != single {
		t.Fatalf("Discover(file) = %v, %v", files, err)
	}

	if _, err := Discover(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing target")
	}
}

func TestReadSongFallsBackToFileName(t *testing.T) {
	read := stubTags(map[string]map[string][]string{
		"tagged.m4a":   {taglib.Title: {"  ", "Real Title"}, taglib.Artist: {"Artist"}, taglib.Album: {"Album"}},
		"untitled.m4a": {taglib.Artist: {"Someone"}},
	})

	song, err := ReadSong("/x/tagged.m4a", read)
	if err != nil {
		t.Fatalf("ReadSong: %v", err)
	}
	if song.Title != "Real Title" || song.Artist != "Artist" || song.Album != "Album" {
		t.Fatalf("unexpected song %+v", song)
	}

	song, _ = ReadSong("/x/untitled.m4a", read)
	if song.Title != "untitled" || song.Artist != "Someone" {
		t.Fatalf("unexpected song %+v", song)
	}

	song, err = ReadSong("/x/My Song.v2.m4a", read)
	if err == nil {
		t.Fatal("expected tag error to be reported")
	}
	if song.Title != "My Song.v2" || song.Artist != "" {
		t.Fatalf("unexpected fallback song %+v", song)
	}
}

func TestReplaceFileRestoresHistory(t *testing.T) {
	lib := newFakeLibrary()
	lib.tracks["Song"] = &music.TrackInfo{
		ID:        "OLD",
		Name:      "Song",
		PlayCount: 42,
		Favorite:  true,
		Playlists: []music.Playlist{{ID: "P1", Name: "Mix"}, {ID: "P2", Name: "Gym"}},
	}
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(map[string]map[string][]string{
		"song.m4a": {taglib.Title: {"Song"}, taglib.Artist: {"Band"}},
	})))

	result := r.ReplaceFile(context.Background(), "/in/song.m4a")
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if !result.Replaced() || result.OldID != "OLD" || result.NewID != "NEW1" || result.Playlists != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	wantCalls := []string{
		"find Song|Band|",
		"delete OLD",
		"add song.m4a",
		"restore NEW1",
		"dup NEW1 P1",
		"dup NEW1 P2",
	}
	if !reflect.DeepEqual(lib.calls, wantCalls) {
		t.Fatalf("calls = %v, want %v", lib.calls, wantCalls)
	}
	if got := lib.restored["NEW1"]; got != [2]any{42, true} {
		t.Fatalf("restored = %v", got)
	}
}

func TestReplaceFileAddsWhenNoExistingTrack(t *testing.T) {
	lib := newFakeLibrary()
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(nil)))

	result := r.ReplaceFile(context.Background(), "/in/fresh.m4a")
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Replaced() || result.OldID != "" || result.NewID != "NEW1" {
		t.Fatalf("unexpected result %+v", result)
	}
	wantCalls := []string{"find fresh||", "add fresh.m4a"}
	if !reflect.DeepEqual(lib.calls, wantCalls) {
		t.Fatalf("calls = %v, want %v", lib.calls, wantCalls)
	}
}

func TestReplaceFileLookupFailureSkipsFile(t *testing.T) {
	lib := newFakeLibrary()
	lib.findErr = errors.New("osascript: Music got an error")
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(nil)))

	result := r.ReplaceFile(context.Background(), "/in/fresh.m4a")
	if result.Err == nil || result.NewID != "" {
		t.Fatalf("expected failure without adding, got %+v", result)
	}
	if len(lib.calls) != 1 {
		t.Fatalf("expected only the lookup, got %v", lib.calls)
	}
}

func TestReplaceFileAddFailure(t *testing.T) {
	lib := newFakeLibrary()
	lib.tracks["song"] = &music.TrackInfo{ID: "OLD"}
	lib.addErr = errors.New("file not importable")
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(nil)))

	result := r.ReplaceFile(context.Background(), "/in/song.m4a")
	if result.Err == nil || result.OldID != "OLD" || result.NewID != "" || result.Replaced() {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestReplaceFilePlaylistFailureKeepsGoing(t *testing.T) {
	lib := newFakeLibrary()
	lib.tracks["song"] = &music.TrackInfo{
		ID:        "OLD",
		Playlists: []music.Playlist{{ID: "P1", Name: "Broken"}, {ID: "P2", Name: "Fine"}},
	}
	lib.dupErr["P1"] = errors.New("smart playlist")
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(nil)))

	result := r.ReplaceFile(context.Background(), "/in/song.m4a")
	if result.Err == nil || !result.Replaced() || result.Playlists != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunProcessesFolderAndHonoursCancel(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "one.m4a")
	touch(t, dir, "two.m4a")

	lib := newFakeLibrary()
	r := New(lib, logging.NewNop(), WithTagReader(stubTags(nil)))
	results, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 || results[0].Song.Title != "one" || results[1].Song.Title != "two" {
		t.Fatalf("unexpected results %+v", results)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = r.Run(ctx, dir)
	if !errors.Is(err, context.Canceled) || len(results) != 0 {
		t.Fatalf("expected cancellation, got %v / %d results", err, len(results))
	}
}
