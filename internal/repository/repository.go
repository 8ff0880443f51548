package repository

// Package repository contains data access layer abstractions over the two
// soft-deletable aggregates, reports and documents. Implementations live in
// subpackages (e.g., postgres) inside this directory.
//
// Absent rows surface as sql.ErrNoRows from Find methods; services translate
// that into their own not-found errors. Soft deletes set deleted_at instead
// of removing rows, and listing/search methods exclude soft-deleted rows
// unless stated otherwise.

import "errors"

// ErrDuplicate is returned by Save when a uniqueness constraint is violated,
// e.g. two active documents with the same content hash inside one report.
// The backing constraint is authoritative; service-level duplicate checks are
// only an advisory fast path.
var ErrDuplicate = errors.New("duplicate row violates uniqueness constraint")
