// Package daemon wires the archive services together behind a single-instance
// lock and serves them over a local HTTP API, including the stored blobs.
package daemon
