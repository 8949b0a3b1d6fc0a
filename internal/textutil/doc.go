// Package textutil scores how alike two track names are.
//
// Similarity blends Jaro-Winkler edit similarity with a token cosine so that
// reordered words ("Live - Song" vs "Song (Live)") still rank close. Nearest
// uses it to suggest the closest library name for a row that failed to match.
package textutil
