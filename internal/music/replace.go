package music

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"amutils/internal/library"
)

// Playlist identifies a user playlist.
type Playlist struct {
	ID   string
	Name string
}

// TrackInfo is the state of a track that must survive a file replacement.
type TrackInfo struct {
	ID        string
	Name      string
	PlayCount int
	Favorite  bool
	DateAdded string
	Location  string
	Playlists []Playlist
}

const findTrackFieldCount = 6

// FindTrack returns the first library track with the given name, narrowed by
// artist and album when they are non-empty. It returns an error wrapping
// library.ErrTrackNotFound when nothing matches.
func (c *Client) FindTrack(ctx context.Context, name, artist, album string) (*TrackInfo, error) {
	conditions := []string{"name is " + quoteAppleScriptString(name)}
	if artist != "" {
		conditions = append(conditions, "artist is "+quoteAppleScriptString(artist))
	}
	if album != "" {
		conditions = append(conditions, "album is "+quoteAppleScriptString(album))
	}
	body := scriptPrelude + fmt.Sprintf(`set matches to (every track of library playlist 1 whose %s)
if (count of matches) is 0 then return ""
set t to item 1 of matches
set pid to persistent ID of t
set loc to ""
try
	set loc to POSIX path of (location of t)
end try
set out to pid & us & (name of t) & us & (played count of t as text) & us & (favorited of t as text) & us & (date added of t as text) & us & loc & rs
repeat with p in (every user playlist)
	if (smart of p) is false and exists (some track of p whose persistent ID is pid) then
		set out to out & (persistent ID of p) & us & (name of p) & rs
	end if
end repeat
return out`, strings.Join(conditions, " and "))

	out, err := c.run(ctx, "find track", body)
	if err != nil {
		return nil, err
	}
	records := splitRecords(out, findTrackFieldCount)
	if len(records) == 0 {
		return nil, fmt.Errorf("find track %q: %w", name, library.ErrTrackNotFound)
	}
	head := records[0]
	info := &TrackInfo{
		ID:        strings.TrimSpace(head[0]),
		Name:      head[1],
		PlayCount: parseIntLoose(head[2]),
		Favorite:  parseBool(head[3]),
		DateAdded: strings.TrimSpace(head[4]),
		Location:  head[5],
	}
	for _, rec := range records[1:] {
		info.Playlists = append(info.Playlists, Playlist{ID: strings.TrimSpace(rec[0]), Name: rec[1]})
	}
	return info, nil
}

// DeleteTrack removes a track from the library.
func (c *Client) DeleteTrack(ctx context.Context, id string) error {
	return c.runTrackScript(ctx, "delete track", id, lookupTrack(id)+"\ndelete t\nreturn \""+replyOK+"\"")
}

// AddFile imports the file at path and returns the new track's persistent ID.
func (c *Client) AddFile(ctx context.Context, path string) (string, error) {
	body := fmt.Sprintf("set t to add (POSIX file %s)\nreturn persistent ID of t", quoteAppleScriptString(path))
	out, err := c.run(ctx, "add file", body)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("add file %s: no track created", path)
	}
	return id, nil
}

// RestoreTrack writes back the play count and favorite flag.
func (c *Client) RestoreTrack(ctx context.Context, id string, playCount int, favorite bool) error {
	body := lookupTrack(id) + fmt.Sprintf("\nset played count of t to %d\nset favorited of t to %s\nreturn %q",
		playCount, strconv.FormatBool(favorite), replyOK)
	return c.runTrackScript(ctx, "restore track", id, body)
}

// DuplicateToPlaylist adds the track to the user playlist with the given
// persistent ID.
func (c *Client) DuplicateToPlaylist(ctx context.Context, id, playlistID string) error {
	body := lookupTrack(id) + fmt.Sprintf(`
set targets to (every user playlist whose persistent ID is %s)
if (count of targets) is 0 then error "playlist not found: " & %s
duplicate t to (item 1 of targets)
return %q`, quoteAppleScriptString(playlistID), quoteAppleScriptString(playlistID), replyOK)
	return c.runTrackScript(ctx, "duplicate track", id, body)
}
