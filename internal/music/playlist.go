package music

import (
	"context"
	"fmt"
	"strings"

	"amutils/internal/logging"
)

// playlistBatchSize bounds the ids sent in one script.
const playlistBatchSize = 200

// AddTracksToPlaylist duplicates the tracks with the given persistent IDs into
// the named user playlist, creating it when missing. Tracks that cannot be
// found are skipped. It returns the number of tracks added.
func (c *Client) AddTracksToPlaylist(ctx context.Context, playlist string, ids []string) (int, error) {
	playlist = strings.TrimSpace(playlist)
	if playlist == "" {
		return 0, fmt.Errorf("playlist name is required")
	}
	added := 0
	for start := 0; start < len(ids); start += playlistBatchSize {
		end := min(start+playlistBatchSize, len(ids))
		out, err := c.run(ctx, "add to playlist", addToPlaylistBody(playlist, ids[start:end]))
		if err != nil {
			return added, err
		}
		added += parseIntLoose(out)
	}
	c.logger.Info("tracks added to playlist",
		logging.String("playlist", playlist),
		logging.Int("added", added),
		logging.Int("requested", len(ids)),
	)
	return added, nil
}

func addToPlaylistBody(playlist string, ids []string) string {
	name := quoteAppleScriptString(playlist)
	return fmt.Sprintf(`if not (exists user playlist %[1]s) then
	make new user playlist with properties {name:%[1]s}
end if
set p to user playlist %[1]s
set n to 0
repeat with pid in %[2]s
	try
		duplicate (some track of library playlist 1 whose persistent ID is (contents of pid)) to p
		set n to n + 1
	end try
end repeat
return n`, name, quoteAppleScriptList(ids))
}
