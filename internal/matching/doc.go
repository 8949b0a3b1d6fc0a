// Package matching resolves import rows to library tracks.
//
// Candidates are built once per import run from the repository's track
// enumeration. Score compares two pathkey.KeySet values against an ordered
// rule table (exact path 100 down to ASCII-only name 30) and reports the first
// rule that fires. Matcher.FindBestMatch scans every candidate, keeps the
// highest score, and breaks ties by enumeration order; bundle queries first try
// the repository's exact-name lookup. FindByDuration is the numeric fallback
// used when no path rule matches.
//
// Tie-breaking is only as deterministic as the repository's enumeration
// order. The Music application does not promise a stable order across calls,
// so two runs over an unchanged library may pick different tied candidates.
package matching
