package music

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"amutils/internal/library"
	"amutils/internal/logging"
)

const trackFieldCount = 10

const listTracksBody = scriptPrelude + `set out to ""
repeat with t in (every track of library playlist 1)
	set pid to ""
	try
		set pid to persistent ID of t
		set loc to ""
		try
			set loc to POSIX path of (location of t)
		end try
		set out to out & pid & us & (name of t) & us & (artist of t) & us & (album of t) & us & (album artist of t) & us & (duration of t as text) & us & loc & us & (played count of t as text) & us & (favorited of t as text) & us & "" & rs
	on error msg
		set out to out & pid & us & us & us & us & us & us & us & us & us & msg & rs
	end try
end repeat
return out`

// ListTracks implements library.Repository. Tracks whose properties cannot be
// read are returned with Err set.
func (c *Client) ListTracks(ctx context.Context) ([]library.TrackEntry, error) {
	out, err := c.run(ctx, "list tracks", listTracksBody)
	if err != nil {
		return nil, err
	}
	return parseTrackList(out), nil
}

func parseTrackList(out string) []library.TrackEntry {
	records := splitRecords(out, trackFieldCount)
	entries := make([]library.TrackEntry, 0, len(records))
	for _, f := range records {
		entry := library.TrackEntry{Track: library.Track{
			ID:          strings.TrimSpace(f[0]),
			Name:        f[1],
			Artist:      f[2],
			Album:       f[3],
			AlbumArtist: f[4],
			Duration:    parseFloatLoose(f[5]),
			FilePath:    f[6],
			PlayCount:   parseIntLoose(f[7]),
			Favorite:    parseBool(f[8]),
		}}
		if msg := strings.TrimSpace(strings.Join(f[9:], unitSep)); msg != "" {
			entry.Err = errors.New(msg)
		}
		entries = append(entries, entry)
	}
	return entries
}

// UpdateTrack implements library.Repository. Only the fields set in fields
// are written.
func (c *Client) UpdateTrack(ctx context.Context, id string, fields library.Fields) error {
	if fields.IsEmpty() {
		return nil
	}
	if err := c.runTrackScript(ctx, "update track", id, updateTrackBody(id, fields)); err != nil {
		return err
	}
	c.logger.Debug("track updated",
		logging.String(logging.FieldTrackID, id),
		logging.String("fields", fields.String()),
	)
	return nil
}

func updateTrackBody(id string, fields library.Fields) string {
	var b strings.Builder
	b.WriteString(lookupTrack(id))
	b.WriteByte('\n')
	set := func(property, value string) {
		fmt.Fprintf(&b, "set %s of t to %s\n", property, value)
	}
	if fields.Name != nil {
		set("name", quoteAppleScriptString(*fields.Name))
	}
	if fields.Album != nil {
		set("album", quoteAppleScriptString(*fields.Album))
	}
	if fields.Artist != nil {
		set("artist", quoteAppleScriptString(*fields.Artist))
	}
	if fields.AlbumArtist != nil {
		set("album artist", quoteAppleScriptString(*fields.AlbumArtist))
	}
	if fields.PlayCount != nil {
		set("played count", strconv.Itoa(*fields.PlayCount))
	}
	if fields.Favorite != nil {
		set("favorited", strconv.FormatBool(*fields.Favorite))
	}
	fmt.Fprintf(&b, "return %q", replyOK)
	return b.String()
}

// FindByExactName implements library.Repository.
func (c *Client) FindByExactName(ctx context.Context, name string) (string, bool, error) {
	body := fmt.Sprintf(`set matches to (every track of library playlist 1 whose name is %s)
if (count of matches) is 0 then return ""
return persistent ID of item 1 of matches`, quoteAppleScriptString(name))
	out, err := c.run(ctx, "find track by name", body)
	if err != nil {
		return "", false, err
	}
	id := strings.TrimSpace(out)
	return id, id != "", nil
}
