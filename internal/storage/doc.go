// Package storage provides the SQLite-backed store shared by every tool
// operation: fixed-schema repositories for the key-value, notes, and
// registry tables, plus the dynamic table repository used for
// caller-defined tables.
package storage
