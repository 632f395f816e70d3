// Package blobs stores uploaded media files on the local filesystem and
// addresses them with public URLs served by the daemon under /blobs/.
//
// Upload names files as {folder}/{timestamp}-{sanitized filename} so
// collisions are practically impossible without coordination. Deletion
// accepts either a store path or a public URL; Owns lets callers decide
// whether an arbitrary URL refers to this store before attempting a
// best-effort delete.
//
// Nothing links a stored blob back to the record that references it. A blob
// uploaded for a form that is never submitted simply remains orphaned; that
// is accepted and not reconciled.
package blobs
