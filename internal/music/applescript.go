package music

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	unitSep   = "\x1f"
	recordSep = "\x1e"
)

// scriptPrelude binds the separators used by multi-value replies.
const scriptPrelude = `set us to character id 31
set rs to character id 30
`

func escapeAppleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func quoteAppleScriptString(s string) string {
	return `"` + escapeAppleScriptString(s) + `"`
}

func quoteAppleScriptList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteAppleScriptString(v)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// tell wraps body in a tell block addressed to app.
func tell(app, body string) string {
	return fmt.Sprintf("tell application %s\n%s\nend tell\n", quoteAppleScriptString(app), body)
}

// splitRecords splits a reply into records of fields, padding each record to
// width fields.
func splitRecords(out string, width int) [][]string {
	out = strings.TrimRight(out, "\r\n")
	var records [][]string
	for _, raw := range strings.Split(out, recordSep) {
		raw = strings.TrimLeft(raw, "\r\n")
		if raw == "" {
			continue
		}
		fields := strings.Split(raw, unitSep)
		for len(fields) < width {
			fields = append(fields, "")
		}
		records = append(records, fields)
	}
	return records
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

func parseFloatLoose(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Locales that use a comma as decimal separator print "264,5".
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntLoose(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
