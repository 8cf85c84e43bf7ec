// Package store provides the career.Store backends: an in-memory map for
// tests and ephemeral runs, and SQLite for anything that should survive a
// restart.
//
// Only ciphertext handle references are persisted, never plaintext
// attribute values; the sole plaintext fields in a stored record are the
// disclosed results a verified oracle callback committed.
package store
