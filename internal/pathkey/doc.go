// Package pathkey derives comparable keys from raw library file paths.
//
// Paths that come out of CSV exports, spreadsheets, and the Music library
// disagree in small ways: zero-width characters copied from web pages,
// decomposed vs composed Unicode, " 2" suffixes Finder appends to duplicate
// files, and .movpkg bundles that the library stores as directories. Normalize
// folds those differences into a KeySet whose fields the matching package
// compares rule by rule.
//
// Normalize is a pure function: equal inputs always yield equal key sets and
// normalizing a key set's CleanPath again yields the same key set.
package pathkey
