// Package store persists archive documents in SQLite and is the system's
// source of truth for recordings and stories.
//
// The Store exposes the minimal persistence surface the archive depends on:
// full-collection listing, insert with store-assigned identifiers, and
// delete-by-identifier. It never validates document bodies, enforces
// uniqueness, or offers server-side queries; any searching or ordering beyond
// insertion time is the caller's concern over the full fetched set.
//
// Schema changes bump the version in schema.go; the database is small enough
// that users recreate it rather than migrate.
package store
