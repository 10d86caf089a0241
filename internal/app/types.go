package app

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors returned by the services. The tool layer translates these
// into the specific messages shown to the calling agent; anything else is a
// store-execution failure reported with the underlying error text.
var (
	ErrInvalidIdentifier = errors.New("app: invalid table name")
	ErrReservedName      = errors.New("app: reserved table name")
	ErrSystemTable       = errors.New("app: system table")
	ErrTableExists       = errors.New("app: table already exists")
	ErrTableNotFound     = errors.New("app: table does not exist")
	ErrUnsafeQuery       = errors.New("app: query contains a mutating keyword")
)

// protectedTables are the system tables plus SQLite's own catalog. They can
// never be created, dropped, or overwritten through the tool surface.
var protectedTables = map[string]struct{}{
	"key_value_store": {},
	"notes":           {},
	"table_registry":  {},
	"sqlite_master":   {},
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// IsProtected reports whether name is a protected table, case-insensitively.
func IsProtected(name string) bool {
	_, ok := protectedTables[strings.ToLower(name)]
	return ok
}

// ValidIdentifier reports whether name is a legal table name: it must start
// with a letter and contain only letters, digits, and underscores.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
