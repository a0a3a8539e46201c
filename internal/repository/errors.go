// Package repository implements the persistence contract over MySQL.
// Lookups return (nil, nil) when no row matches so callers don't need
// to special-case sql.ErrNoRows.
package repository

import "errors"

// ErrDuplicate is returned when an insert is rejected by a uniqueness
// constraint (MySQL error 1062).  It is the storage layer's conflict
// signal that drives the optimistic creation retry loop.
var ErrDuplicate = errors.New("duplicate row")
