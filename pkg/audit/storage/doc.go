// Package storage provides audit trail storage backends.
//
// Two implementations are available: an in-memory store for tests and
// development, and a SQLite-backed store for durable deployments.
package storage
