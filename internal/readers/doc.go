// Package readers provides implementations of the Reader interface for
// the supported book formats. Each reader knows how to turn one file
// format into the canonical Document form.
//
// Readers are registered with the ReaderRegistry at startup.
package readers
