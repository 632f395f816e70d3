// Package archive defines the domain model for the cultural repository:
// audio recordings and community stories, plus the client-side search that
// narrows fetched collections.
package archive
