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
	"lepa/internal/store"
)

// StoryService adapts story operations onto the document and blob stores.
type StoryService struct {
	store    DocumentStore
	blobs    BlobStore
	notifier notifications.Service
	logger   *slog.Logger
}

// NewStoryService wires a story adapter.
func NewStoryService(docs DocumentStore, blobStore BlobStore, notifier notifications.Service, logger *slog.Logger) *StoryService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StoryService{
		store:    docs,
		blobs:    blobStore,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "stories"),
	}
}

// List fetches the complete story collection.
func (s *StoryService) List(ctx context.Context) ([]archive.Story, error) {
	docs, err := s.store.ListAll(ctx, store.CollectionStories)
	if err != nil {
		return nil, err
	}

	stories := make([]archive.Story, 0, len(docs))
	for _, doc := range docs {
		var story archive.Story
		if err := json.Unmarshal(doc.Body, &story); err != nil {
			s.logger.Warn("skipping undecodable story document",
				logging.String(logging.FieldRecordID, doc.ID),
				logging.Error(err))
			continue
		}
		story.ID = doc.ID
		stories = append(stories, story)
	}
	return stories, nil
}

// Create strips any client-assigned identifier, stamps a display date when
// the caller leaves it blank, attaches a creation timestamp, and writes the
// entity as a new record.
func (s *StoryService) Create(ctx context.Context, story archive.Story) (string, error) {
	story.ID = ""
	story.CreatedAt = time.Now().UnixMilli()
	fillStoryDefaults(&story)

	body, err := json.Marshal(story)
	if err != nil {
		return "", store.Unavailable("encode story", err)
	}

	id, err := s.store.Insert(ctx, store.CollectionStories, body)
	if err != nil {
		s.notifyError(ctx, err, "story create")
		return "", err
	}

	s.logger.Info("story created",
		logging.String(logging.FieldRecordID, id),
		logging.String("title", story.Title))
	if notifyErr := s.notifier.NotifyStoryAdded(ctx, story.Title, story.Author); notifyErr != nil {
		s.logger.Warn("story-added notification failed", logging.Error(notifyErr))
	}
	return id, nil
}

// Delete removes a story by identifier and best-effort-deletes its cover
// image when the URL points into our blob store.
func (s *StoryService) Delete(ctx context.Context, id, imageURL string) error {
	if err := s.store.DeleteByID(ctx, store.CollectionStories, id); err != nil {
		s.notifyError(ctx, err, "story delete")
		return err
	}

	if imageURL = strings.TrimSpace(imageURL); imageURL != "" && s.blobs.Owns(imageURL) {
		if err := s.blobs.Delete(imageURL); err != nil {
			s.logger.Warn("image blob delete failed, record removed anyway",
				logging.String(logging.FieldRecordID, id),
				logging.String("image_url", imageURL),
				logging.Error(err))
		}
	}

	s.logger.Info("story deleted", logging.String(logging.FieldRecordID, id))
	if notifyErr := s.notifier.NotifyStoryRemoved(ctx, id); notifyErr != nil {
		s.logger.Warn("story-removed notification failed", logging.Error(notifyErr))
	}
	return nil
}

// Upload stores a cover image and returns its durable URL.
func (s *StoryService) Upload(filename string, data []byte) (string, error) {
	return s.blobs.Upload(blobs.FolderImages, filename, data)
}

func (s *StoryService) notifyError(ctx context.Context, err error, label string) {
	if notifyErr := s.notifier.NotifyError(ctx, err, label); notifyErr != nil {
		s.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}

func fillStoryDefaults(story *archive.Story) {
	if strings.TrimSpace(story.Title) == "" {
		story.Title = "Untitled"
	}
	if strings.TrimSpace(story.Author) == "" {
		story.Author = "Anonymous"
	}
	if strings.TrimSpace(story.Date) == "" {
		story.Date = archive.StoryDate(time.Now())
	}
}
