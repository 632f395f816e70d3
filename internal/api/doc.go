// Package api provides the service layer between the HTTP surface and the
// document, blob, and playback components. Services keep no derived state:
// clients refetch collections after every mutation.
package api
