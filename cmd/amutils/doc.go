// Command amutils is the Apple Music library utility.
//
// It reports listening statistics, exports the library to CSV, imports play
// counts and favourites back from CSV with fuzzy path matching, replaces
// tracks with new audio files while keeping their history, and keeps an
// audit trail of imports. Library access goes through osascript, so the
// library commands only work on macOS with the Music app available.
//
// Commands that write to the library hold an exclusive lock under the state
// directory so two amutils processes never write at the same time.
package main
