// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Reader: Parses one book file format into a Document
//   - ReaderRegistry: Dispatches to the reader for a file's extension
//   - LibraryStore: Library entry persistence and book identity
//   - AnnotationStore: Per-book highlight/note/bookmark persistence
//   - SettingsStore: Runtime user settings persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or reader package
package driven
