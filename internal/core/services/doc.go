// Package services contains the application use cases. Services
// orchestrate calls to driven ports (readers, stores) and hold no
// state of their own beyond their dependencies.
package services
