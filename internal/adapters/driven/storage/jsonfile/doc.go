// Package jsonfile implements the persistence ports against flat JSON
// documents in the user's data directory.
//
// Each collection lives in its own file (highlights.json, notes.json,
// bookmarks.json, settings.json, library.json). Annotation collections
// are keyed by book ID at the top level; settings and library are flat.
// Saves write a temporary file and atomically rename it over the real
// one, so a crash mid-write never leaves a partial file visible. Loads
// fall back to empty defaults on missing or corrupt files, so a bad
// file never prevents the application from starting.
package jsonfile
