// Package replace swaps library tracks for new audio files while keeping
// their listening history.
//
// For each .m4a file the title, artist and album tags identify the existing
// track. That track is deleted, the new file is added, and the old play count,
// favorite flag and playlist membership are written onto the new track. Files
// with no matching track are simply added.
package replace
