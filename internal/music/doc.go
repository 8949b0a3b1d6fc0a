// Package music drives the Music application through AppleScript.
//
// Every operation renders a short script, runs it through a Runner (osascript
// by default, with the script on stdin), and parses the reply. Replies that
// carry several values separate fields with the ASCII unit separator and
// records with the record separator, so track names containing tabs, commas
// or newlines survive intact.
//
// Client implements library.Repository and adds the lookups and mutations the
// replace and playlist commands need. Tracks are identified by their
// persistent ID, which survives application restarts.
package music
