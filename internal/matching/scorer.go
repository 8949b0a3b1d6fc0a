package matching

import (
	"strings"

	"amutils/internal/pathkey"
)

// Reason names the rule that produced a match.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonExactPath          Reason = "exact_path"
	ReasonFilename           Reason = "filename"
	ReasonBasename           Reason = "basename"
	ReasonSimpleBasename     Reason = "simple_basename"
	ReasonBundleVersion      Reason = "bundle_version"
	ReasonBasenameInFilename Reason = "basename_in_filename"
	ReasonPathSegments       Reason = "path_segments"
	ReasonParentDirSubstring Reason = "parent_dir_substring"
	ReasonASCIIName          Reason = "ascii_name"
	ReasonExactName          Reason = "exact_name"
	ReasonDuration           Reason = "duration"
)

// Scores assigned by the rule table. ScoreExactName is used when a bundle
// query resolves through the repository's name lookup instead of a scan.
const (
	ScoreExactPath          = 100
	ScoreExactName          = 90
	ScoreFilename           = 90
	ScoreBasename           = 80
	ScoreSimpleBasename     = 70
	ScoreBundleVersion      = 65
	ScoreBasenameInFilename = 60
	ScorePathSegments       = 50
	ScoreParentDirSubstring = 40
	ScoreASCIIName          = 30
)

// minLooseKeyLen is the rune length a simplified key must exceed before the
// substring and ASCII rules may use it.
const minLooseKeyLen = 3

// minSharedSegments is how many trailing path components must coincide for
// the segment rule.
const minSharedSegments = 2

func (r Reason) String() string {
	if r == ReasonNone {
		return "none"
	}
	return string(r)
}

// Result is the outcome of scoring one candidate.
type Result struct {
	Score       int
	CandidateID string
	Reason      Reason
}

type rule struct {
	score  int
	reason Reason
	match  func(q, c pathkey.KeySet) bool
}

// rules is evaluated top-down; the first rule that matches wins.
var rules = []rule{
	{ScoreExactPath, ReasonExactPath, func(q, c pathkey.KeySet) bool {
		return q.CleanPath == c.CleanPath
	}},
	{ScoreFilename, ReasonFilename, func(q, c pathkey.KeySet) bool {
		return q.Filename != "" && q.Filename == c.Filename
	}},
	{ScoreBasename, ReasonBasename, func(q, c pathkey.KeySet) bool {
		return q.Basename != "" && q.Basename == c.Basename
	}},
	{ScoreSimpleBasename, ReasonSimpleBasename, func(q, c pathkey.KeySet) bool {
		return q.SimpleBasename != "" && q.SimpleBasename == c.SimpleBasename
	}},
	{ScoreBundleVersion, ReasonBundleVersion, func(q, c pathkey.KeySet) bool {
		if !q.IsBundle || !c.IsBundle {
			return false
		}
		base := pathkey.StripTrailingNumber(q.Basename)
		return base != "" && base == pathkey.StripTrailingNumber(c.Basename)
	}},
	{ScoreBasenameInFilename, ReasonBasenameInFilename, func(q, c pathkey.KeySet) bool {
		return q.Basename != "" && strings.Contains(c.Filename, q.Basename)
	}},
	{ScorePathSegments, ReasonPathSegments, func(q, c pathkey.KeySet) bool {
		return sharedSegments(q.Segments, c.Segments) >= minSharedSegments
	}},
	{ScoreParentDirSubstring, ReasonParentDirSubstring, func(q, c pathkey.KeySet) bool {
		parent := q.Parent()
		if parent == "" || parent != c.Parent() {
			return false
		}
		return pathkey.RuneLen(q.SimpleBasename) > minLooseKeyLen &&
			strings.Contains(c.SimpleBasename, q.SimpleBasename)
	}},
	{ScoreASCIIName, ReasonASCIIName, func(q, c pathkey.KeySet) bool {
		return pathkey.RuneLen(q.ASCIIName) > minLooseKeyLen && q.ASCIIName == c.ASCIIName
	}},
}

// Score compares a query key set with a candidate key set. It reports false
// when no rule matches or either side has no path.
func Score(query, candidate pathkey.KeySet) (int, Reason, bool) {
	if query.Empty() || candidate.Empty() {
		return 0, ReasonNone, false
	}
	for _, r := range rules {
		if r.match(query, candidate) {
			return r.score, r.reason, true
		}
	}
	return 0, ReasonNone, false
}

func sharedSegments(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, segment := range b {
		set[segment] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(a))
	for _, segment := range a {
		if _, dup := seen[segment]; dup {
			continue
		}
		seen[segment] = struct{}{}
		if _, ok := set[segment]; ok {
			shared++
		}
	}
	return shared
}
