// Package annotations holds the in-memory annotation stores for one
// open book: highlights, notes and bookmarks.
//
// Each store maps a generated ID to a record. The host swaps a store's
// contents wholesale with Load when switching books and reads it back
// with All before switching away; persistence is an explicit host
// action, not a side effect of mutation. A BookContext groups the three
// stores so per-book state is passed around explicitly instead of
// living in ambient globals.
package annotations
