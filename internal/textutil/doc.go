// Package textutil provides small text normalization helpers shared across
// the archive, primarily filename sanitization for blob uploads.
package textutil
