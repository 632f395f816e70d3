package api

import "lepa/internal/archive"

// AuthorizeRequest carries a submitted access key.
type AuthorizeRequest struct {
	Key string `json:"key"`
}

// SessionResponse reports the currently established role.
type SessionResponse struct {
	Role string `json:"role"`
}

// RecordingListResponse wraps a recording collection for API responses.
type RecordingListResponse struct {
	Recordings []archive.Recording `json:"recordings"`
}

// StoryListResponse wraps a story collection for API responses.
type StoryListResponse struct {
	Stories []archive.Story `json:"stories"`
}

// CreateResponse acknowledges a create; clients refetch the collection
// rather than patching local state from this payload.
type CreateResponse struct {
	ID string `json:"id"`
}

// UploadResponse returns the durable URL of an uploaded blob.
type UploadResponse struct {
	URL string `json:"url"`
}

// PlaybackRequest selects a recording for the playback slot.
type PlaybackRequest struct {
	ID string `json:"id"`
}

// PlaybackResponse describes the playback slot.
type PlaybackResponse struct {
	Current *archive.Recording `json:"current,omitempty"`
	Playing bool               `json:"playing"`
}

// StatusResponse aggregates daemon runtime information for API consumers.
type StatusResponse struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid"`
	Role       string `json:"role"`
	Recordings int    `json:"recordings"`
	Stories    int    `json:"stories"`
	DBPath     string `json:"dbPath"`
	BlobRoot   string `json:"blobRoot"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
