package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"lepa/internal/archive"
	"lepa/internal/blobs"
	"lepa/internal/logging"
	"lepa/internal/notifications"
	"lepa/internal/playback"
	"lepa/internal/store"
)

// DocumentStore abstracts the persistence operations the adapters need: full
// listing, insert with store-assigned identity, and delete by identifier.
type DocumentStore interface {
	ListAll(ctx context.Context, collection string) ([]store.Document, error)
	Insert(ctx context.Context, collection string, body json.RawMessage) (string, error)
	DeleteByID(ctx context.Context, collection, id string) error
}

// BlobStore abstracts blob uploads and best-effort deletion.
type BlobStore interface {
	Upload(folder blobs.Folder, filename string, data []byte) (string, error)
	Owns(url string) bool
	Delete(urlOrPath string) error
}

// RecordingService adapts recording operations onto the document and blob
// stores. It keeps no local cache: after any mutation the caller re-invokes
// List so the surface never diverges from the store for more than one round
// trip.
type RecordingService struct {
	store    DocumentStore
	blobs    BlobStore
	player   *playback.Player
	notifier notifications.Service
	logger   *slog.Logger
}

// NewRecordingService wires a recording adapter.
func NewRecordingService(docs DocumentStore, blobStore BlobStore, player *playback.Player, notifier notifications.Service, logger *slog.Logger) *RecordingService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RecordingService{
		store:    docs,
		blobs:    blobStore,
		player:   player,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "recordings"),
	}
}

// List fetches the complete recording collection. Any search narrowing
// happens client-side over this full set via archive.FilterRecordings.
func (s *RecordingService) List(ctx context.Context) ([]archive.Recording, error) {
	docs, err := s.store.ListAll(ctx, store.CollectionRecordings)
	if err != nil {
		return nil, err
	}

	recordings := make([]archive.Recording, 0, len(docs))
	for _, doc := range docs {
		var recording archive.Recording
		if err := json.Unmarshal(doc.Body, &recording); err != nil {
			s.logger.Warn("skipping undecodable recording document",
				logging.String(logging.FieldRecordID, doc.ID),
				logging.Error(err))
			continue
		}
		recording.ID = doc.ID
		recordings = append(recordings, recording)
	}
	return recordings, nil
}

// Create strips any client-assigned identifier, fills defaults, attaches a
// creation timestamp, and writes the entity as a new record. The store
// assigns the durable identifier. On failure nothing is inserted locally;
// the caller surfaces the error and the user retries manually.
func (s *RecordingService) Create(ctx context.Context, recording archive.Recording) (string, error) {
	recording.ID = ""
	recording.CreatedAt = time.Now().UnixMilli()
	fillRecordingDefaults(&recording)

	body, err := json.Marshal(recording)
	if err != nil {
		return "", store.Unavailable("encode recording", err)
	}

	id, err := s.store.Insert(ctx, store.CollectionRecordings, body)
	if err != nil {
		s.notifyError(ctx, err, "recording create")
		return "", err
	}

	s.logger.Info("recording created",
		logging.String(logging.FieldRecordID, id),
		logging.String("title", recording.Title))
	if notifyErr := s.notifier.NotifyRecordingAdded(ctx, recording.Title, recording.Performer); notifyErr != nil {
		s.logger.Warn("recording-added notification failed", logging.Error(notifyErr))
	}
	return id, nil
}

// Delete removes a recording by identifier and best-effort-deletes the
// associated audio blob when the URL points into our blob store. A blob
// deletion failure is logged and swallowed; the record deletion is the
// authoritative outcome.
func (s *RecordingService) Delete(ctx context.Context, id, audioURL string) error {
	if err := s.store.DeleteByID(ctx, store.CollectionRecordings, id); err != nil {
		s.notifyError(ctx, err, "recording delete")
		return err
	}

	if s.player != nil {
		s.player.Drop(id)
	}

	if audioURL = strings.TrimSpace(audioURL); audioURL != "" && s.blobs.Owns(audioURL) {
		if err := s.blobs.Delete(audioURL); err != nil {
			s.logger.Warn("audio blob delete failed, record removed anyway",
				logging.String(logging.FieldRecordID, id),
				logging.String("audio_url", audioURL),
				logging.Error(err))
		}
	}

	s.logger.Info("recording deleted", logging.String(logging.FieldRecordID, id))
	if notifyErr := s.notifier.NotifyRecordingRemoved(ctx, id); notifyErr != nil {
		s.logger.Warn("recording-removed notification failed", logging.Error(notifyErr))
	}
	return nil
}

// Upload stores an audio file and returns its durable URL. There is no
// transaction spanning this and a later Create; abandoning the form after a
// successful upload leaves an orphaned blob, which is accepted.
func (s *RecordingService) Upload(filename string, data []byte) (string, error) {
	return s.blobs.Upload(blobs.FolderMusic, filename, data)
}

func (s *RecordingService) notifyError(ctx context.Context, err error, label string) {
	if notifyErr := s.notifier.NotifyError(ctx, err, label); notifyErr != nil {
		s.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}

func fillRecordingDefaults(recording *archive.Recording) {
	if strings.TrimSpace(recording.Title) == "" {
		recording.Title = "Untitled"
	}
	if strings.TrimSpace(recording.Genre) == "" {
		recording.Genre = "Traditional"
	}
	if strings.TrimSpace(recording.Performer) == "" {
		recording.Performer = "Unknown"
	}
	if strings.TrimSpace(recording.Duration) == "" {
		recording.Duration = "0:00"
	}
	if strings.TrimSpace(recording.Origin) == "" {
		recording.Origin = "Unknown"
	}
}
