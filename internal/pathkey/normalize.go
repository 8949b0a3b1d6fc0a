package pathkey

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// BundleExt is the suffix of directory-style media containers that the
// library treats as a single file.
const BundleExt = ".movpkg"

const maxSegments = 3

var (
	// versionBeforeExt matches duplicate-file suffixes such as "Song 2.m4a".
	versionBeforeExt = regexp.MustCompile(`(?:\s+\d+)+(\.\w+)$`)
	trailingNumber   = regexp.MustCompile(`(?:\s+\d+)+\s*$`)
)

// KeySet holds the comparable keys derived from a single raw path.
type KeySet struct {
	CleanPath      string
	Filename       string
	Basename       string
	SimpleBasename string
	Dirname        string
	IsBundle       bool
	Segments       []string
	ASCIIName      string
}

// Normalize derives the key set for raw. It never fails; an empty or
// entirely invisible input yields the zero KeySet.
func Normalize(raw string) KeySet {
	clean := stripInvisible(raw)
	clean = norm.NFC.String(clean)
	clean = trimTrailing(clean)
	clean = stripVersionSuffix(clean)
	clean = trimTrailing(clean)
	if clean == "" {
		return KeySet{}
	}

	keys := KeySet{CleanPath: clean}
	if idx := strings.LastIndexByte(clean, '/'); idx >= 0 {
		keys.Filename = clean[idx+1:]
		if idx == 0 {
			keys.Dirname = "/"
		} else {
			keys.Dirname = clean[:idx]
		}
	} else {
		keys.Filename = clean
	}

	keys.IsBundle = hasBundleExt(keys.Filename)
	if keys.IsBundle {
		keys.Basename = keys.Filename[:len(keys.Filename)-len(BundleExt)]
	} else {
		keys.Basename = trimExt(keys.Filename)
	}

	keys.SimpleBasename = simplify(keys.Basename, !keys.IsBundle)
	keys.ASCIIName = asciiOnly(keys.SimpleBasename)
	keys.Segments = lastSegments(clean, maxSegments)
	return keys
}

// Parent returns the name of the directory that contains the path, or an
// empty string when the path has no named parent.
func (k KeySet) Parent() string {
	if k.Dirname == "" || k.Dirname == "/" {
		return ""
	}
	if idx := strings.LastIndexByte(k.Dirname, '/'); idx >= 0 {
		return k.Dirname[idx+1:]
	}
	return k.Dirname
}

// Empty reports whether the key set was derived from an empty path.
func (k KeySet) Empty() bool {
	return k.CleanPath == ""
}

// StripTrailingNumber removes trailing " <digits>" tokens from name.
func StripTrailingNumber(name string) string {
	return strings.TrimRightFunc(trailingNumber.ReplaceAllString(name, ""), unicode.IsSpace)
}

// RuneLen counts characters rather than bytes so length floors behave the
// same for every script.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x200B && r <= 0x200F,
			r >= 0x2028 && r <= 0x202F,
			r == 0xFEFF,
			unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
}

func stripVersionSuffix(s string) string {
	loc := versionBeforeExt.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	ext := s[loc[2]:loc[3]]
	if strings.EqualFold(ext, BundleExt) {
		return s
	}
	return s[:loc[0]] + ext
}

func hasBundleExt(name string) bool {
	return len(name) > len(BundleExt) && strings.EqualFold(name[len(name)-len(BundleExt):], BundleExt)
}

// trimExt drops the final extension. Leading dots do not start an extension,
// so ".hidden" keeps its name.
func trimExt(name string) string {
	idx := strings.LastIndexByte(name, '.')
	leading := len(name) - len(strings.TrimLeft(name, "."))
	if idx < leading {
		return name
	}
	return name[:idx]
}

func simplify(basename string, stripNumber bool) string {
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, basename)
	if stripNumber {
		kept = trailingNumber.ReplaceAllString(kept, "")
	}
	return strings.TrimSpace(strings.ToLower(kept))
}

func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func lastSegments(clean string, limit int) []string {
	var segments []string
	for _, part := range strings.Split(clean, "/") {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	if len(segments) > limit {
		segments = segments[len(segments)-limit:]
	}
	return segments
}
