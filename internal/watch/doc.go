// Package watch reloads a file-backed graph store when its file changes on
// disk, so edits made by another process or by hand show up in a running
// server. Events are debounced because an atomic replace produces several
// events in quick succession.
package watch
