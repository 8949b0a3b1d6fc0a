// Package library defines the track repository capability the import pipeline
// consumes and the value types that cross it.
//
// The live implementation lives in the music package and talks to the Music
// application. DryRun wraps any repository so resolution can be previewed
// without writing. WriterLock serializes commands that mutate the library.
package library
