// Package tracksheet reads and writes the CSV and text files exchanged with
// the Music library.
//
// Reading negotiates the file's character encoding from an ordered list,
// detects whether the header describes the standard (id keyed) or matched
// (path keyed) layout, and parses each record into a Row whose optional
// fields stay unset when the cell is blank or malformed. Writing produces the
// standard CSV export and the plain text path listing.
package tracksheet
