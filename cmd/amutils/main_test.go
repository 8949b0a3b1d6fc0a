package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"amutils/internal/config"
	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/music"
	"amutils/internal/testsupport"
	"amutils/internal/testsupport/memlib"
)

type fakeMusic struct {
	*memlib.Library

	existing  map[string]*music.TrackInfo
	deleted   []string
	added     []string
	playlists map[string][]string
}

func newFakeMusic(tracks ...library.Track) *fakeMusic {
	return &fakeMusic{
		Library: memlib.New(tracks...),
		existing:         map[string]*music.TrackInfo{},
		playlists:        map[string][]string{},
	}
}

func (f *fakeMusic) FindTrack(_ context.Context, name, _, _ string) (*music.TrackInfo, error) {
	if info, ok := f.existing[name]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("track %q: %w", name, library.ErrTrackNotFound)
}

func (f *fakeMusic) DeleteTrack(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMusic) AddFile(_ context.Context, path string) (string, error) {
	f.added = append(f.added, filepath.Base(path))
	return "NEW-" + filepath.Base(path), nil
}

func (f *fakeMusic) RestoreTrack(context.Context, string, int, bool) error { return nil }

func (f *fakeMusic) DuplicateToPlaylist(context.Context, string, string) error { return nil }

func (f *fakeMusic) AddTracksToPlaylist(_ context.Context, playlist string, ids []string) (int, error) {
	f.playlists[playlist] = append(f.playlists[playlist], ids...)
	return len(ids), nil
}

type cliEnv struct {
	music      *fakeMusic
	baseDir    string
	configPath string
	stateDir   string
}

func newCLIEnv(t *testing.T, historyEnabled bool, tracks ...library.Track) *cliEnv {
	t.Helper()
	opts := []testsupport.ConfigOption{testsupport.WithStubbedBinaries()}
	if historyEnabled {
		opts = append(opts, testsupport.WithHistory())
	}
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	return &cliEnv{
		music:      newFakeMusic(tracks...),
		baseDir:    base,
		configPath: testsupport.WriteConfigFile(t, cfg, filepath.Join(base, "amutils.toml")),
		stateDir:   cfg.Paths.StateDir,
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var configFlag string
	var verbose bool
	ctx := newCommandContext(&configFlag, &verbose)
	ctx.logger = logging.NewNop()
	ctx.newLibrary = func(*config.Config, *slog.Logger) musicLibrary { return e.music }

	cmd := buildRootCommand(ctx, &configFlag, &verbose)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatAndPlayedTime(t *testing.T) {
	env := newCLIEnv(t, false,
		library.Track{ID: "1", Name: "Long", Duration: 3600, PlayCount: 1},
		library.Track{ID: "2", Name: "Short", Duration: 30, PlayCount: 2},
		library.Track{ID: "3", Name: "Unplayed", Duration: 200},
	)

	out, err := env.run(t, "stat")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !strings.Contains(out, "You have 3 songs in your library") {
		t.Fatalf("unexpected stat output:\n%s", out)
	}
	if !strings.Contains(out, "0 days, 1 hrs, 1 mins, 0 seconds (61 minutes)") {
		t.Fatalf("unexpected listened time:\n%s", out)
	}

	out, err = env.run(t, "playedtime")
	if err != nil {
		t.Fatalf("playedtime: %v", err)
	}
	if strings.TrimSpace(out) != "0 days, 1 hrs, 1 mins, 0 seconds (61 minutes)" {
		t.Fatalf("unexpected playedtime output %q", out)
	}
}

func TestExportWritesCSVIntoFolder(t *testing.T) {
	env := newCLIEnv(t, false,
		library.Track{ID: "A1", Name: "Song", Album: "Album", Artist: "Artist", PlayCount: 4, Favorite: true},
	)
	dir := filepath.Join(env.baseDir, "exports")

	out, err := env.run(t, "export", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(dir, "tracks_export.csv")
	if !strings.Contains(out, "Exported 1 tracks to "+path) {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	if len(text) == len(data) {
		t.Fatal("export is missing the byte order mark")
	}
	if !strings.HasPrefix(text, "id,name,album,artist,play_count,is_favorite") || !strings.Contains(text, "A1,Song,Album,Artist,4,") {
		t.Fatalf("unexpected export:\n%s", text)
	}
}

func TestExportPathsAppendsTxt(t *testing.T) {
	env := newCLIEnv(t, false,
		library.Track{ID: "1", Name: "B", Artist: "X", FilePath: "/m/b.m4a"},
		library.Track{ID: "2", Name: "A", Artist: "Y", FilePath: "/m/a.m4a"},
		library.Track{ID: "3", Name: "Stream"},
	)
	target := filepath.Join(env.baseDir, "paths")

	out, err := env.run(t, "export-paths", target)
	if err != nil {
		t.Fatalf("export-paths: %v", err)
	}
	if !strings.Contains(out, "Exported 2 track paths") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(target + ".txt")
	if err != nil {
		t.Fatalf("read path list: %v", err)
	}
	text := string(data)
	if strings.Index(text, "/m/a.m4a | A | Y") > strings.Index(text, "/m/b.m4a | B | X") {
		t.Fatalf("paths not sorted:\n%s", text)
	}
}

var runIDPattern = regexp.MustCompile(`Run: ([0-9a-f-]{36})`)

func TestImportRecordsHistory(t *testing.T) {
	env := newCLIEnv(t, true,
		library.Track{ID: "T1", Name: "Old", FilePath: "/Music/A/Song.m4a"},
	)
	csvPath := testsupport.WriteCSV(t, env.baseDir, "tracks.csv",
		"File Directory,Title,Album,Artist,Album Artist",
		"/Music/A/Song 2.m4a,New Title,Album,Artist,Band",
		"/Nowhere/Gone.m4a,Old,,,",
	)

	out, err := env.run(t, "import", csvPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Updated by path: 1") || !strings.Contains(out, "Failed: 1") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "row 3") {
		t.Fatalf("expected the failed row to be listed:\n%s", out)
	}
	track, _ := env.music.Track("T1")
	if track.Name != "New Title" || track.AlbumArtist != "Band" {
		t.Fatalf("track not updated: %+v", track)
	}

	match := runIDPattern.FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("run id missing from output:\n%s", out)
	}

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, match[1]) || !strings.Contains(out, csvPath) {
		t.Fatalf("run missing from history:\n%s", out)
	}

	out, err = env.run(t, "history", "show", match[1])
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	if !strings.Contains(out, "/Nowhere/Gone.m4a") || strings.Contains(out, "/Music/A/Song 2.m4a") {
		t.Fatalf("expected only the failed row:\n%s", out)
	}

	out, err = env.run(t, "history", "prune", "--keep", "0")
	if err != nil || !strings.Contains(out, "Removed 1 runs") {
		t.Fatalf("history prune: %v\n%s", err, out)
	}
}

func TestImportDryRunLeavesLibrary(t *testing.T) {
	env := newCLIEnv(t, false, library.Track{ID: "T1", Name: "Old"})
	csvPath := testsupport.WriteCSV(t, env.baseDir, "standard.csv",
		"id,name,album,artist,play_count,is_favorite",
		"T1,New,,,9,yes",
	)

	out, err := env.run(t, "import", "--dry-run", csvPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "(dry run)") || !strings.Contains(out, "Updated by id: 1") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if env.music.Updates() != 0 {
		t.Fatalf("dry run wrote %d updates", env.music.Updates())
	}
}

func TestImportUnknownHeaderFails(t *testing.T) {
	env := newCLIEnv(t, false)
	csvPath := testsupport.WriteCSV(t, env.baseDir, "bad.csv", "foo,bar", "1,2")
	if _, err := env.run(t, "import", csvPath); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := newCLIEnv(t, false)
	if _, err := env.run(t, "history"); !errors.Is(err, errHistoryDisabled) {
		t.Fatalf("expected errHistoryDisabled, got %v", err)
	}
}

func TestAddToPlaylistSelectsBundles(t *testing.T) {
	env := newCLIEnv(t, false,
		library.Track{ID: "1", FilePath: "/Lib/Track.movpkg"},
		library.Track{ID: "2", FilePath: "/Lib/Track.m4a"},
		library.Track{ID: "3", FilePath: "/Lib/Other 2.movpkg/"},
	)

	out, err := env.run(t, "addtoplaylist", "Bundles")
	if err != nil {
		t.Fatalf("addtoplaylist: %v", err)
	}
	if !strings.Contains(out, "Added 2 tracks to playlist 'Bundles'") {
		t.Fatalf("unexpected output %q", out)
	}
	if got := env.music.playlists["Bundles"]; len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("unexpected playlist ids %v", got)
	}
}

func TestAddToPlaylistRespectsWriterLock(t *testing.T) {
	env := newCLIEnv(t, false, library.Track{ID: "1", FilePath: "/Lib/Track.movpkg"})
	lock, err := library.AcquireWriter(filepath.Join(env.stateDir, "library.lock"))
	if err != nil {
		t.Fatalf("AcquireWriter: %v", err)
	}
	defer lock.Release()

	if _, err := env.run(t, "addtoplaylist", "Bundles"); !errors.Is(err, library.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if len(env.music.playlists) != 0 {
		t.Fatal("playlist written while locked")
	}
}

func TestReplaceFolder(t *testing.T) {
	env := newCLIEnv(t, false)
	env.music.existing["old"] = &music.TrackInfo{ID: "OLD", PlayCount: 3}
	dir := filepath.Join(env.baseDir, "incoming")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"old.m4a", "new.m4a", "cover.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not really audio"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := env.run(t, "replace", dir)
	if err != nil {
		t.Fatalf("replace: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Replaced: 1") || !strings.Contains(out, "Added: 1") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if len(env.music.deleted) != 1 || env.music.deleted[0] != "OLD" {
		t.Fatalf("unexpected deletions %v", env.music.deleted)
	}
	if len(env.music.added) != 2 {
		t.Fatalf("unexpected additions %v", env.music.added)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := newCLIEnv(t, false)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, err := env.run(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := env.run(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	out, err = env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") || !strings.Contains(out, env.configPath) {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "[OK]") {
		t.Fatalf("expected the stubbed osascript to be found:\n%s", out)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	env := newCLIEnv(t, false)
	if err := os.WriteFile(env.configPath, []byte("[paths]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "stat"); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	// init never loads the config.
	if _, err := env.run(t, "config", "init", "--path", filepath.Join(env.baseDir, "fresh.toml")); err != nil {
		t.Fatalf("config init with broken config: %v", err)
	}
}
