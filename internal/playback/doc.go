// Package playback tracks the archive's single exclusive playback slot:
// at most one recording is current, and switching selection stops the
// previous one.
package playback
