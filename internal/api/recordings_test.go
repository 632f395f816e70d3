package api_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lepa/internal/api"
	"lepa/internal/archive"
	"lepa/internal/blobs"
	"lepa/internal/notifications"
	"lepa/internal/playback"
	"lepa/internal/testsupport"
)

type stubBlobStore struct {
	uploads   map[string][]byte
	deleted   []string
	deleteErr error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{uploads: make(map[string][]byte)}
}

func (s *stubBlobStore) Upload(folder blobs.Folder, filename string, data []byte) (string, error) {
	url := "http://127.0.0.1:7519/blobs/" + string(folder) + "/" + filename
	s.uploads[url] = data
	return url, nil
}

func (s *stubBlobStore) Owns(url string) bool {
	return strings.HasPrefix(url, "http://127.0.0.1:7519/blobs/")
}

func (s *stubBlobStore) Delete(urlOrPath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, urlOrPath)
	return nil
}

func newRecordingService(t *testing.T, blobStore api.BlobStore, player *playback.Player) *api.RecordingService {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	docs := testsupport.MustOpenStore(t, cfg)
	return api.NewRecordingService(docs, blobStore, player, notifications.NewService(cfg), nil)
}

func TestRecordingCreateThenListRoundTrips(t *testing.T) {
	svc := newRecordingService(t, newStubBlobStore(), nil)
	ctx := context.Background()

	submitted := archive.Recording{
		Title:       "Igal Igal",
		Genre:       "Dance",
		Performer:   "Semporna Heritage Group",
		Description: "Traditional dance accompaniment",
		Duration:    "4:12",
		Origin:      "Semporna",
	}
	id, err := svc.Create(ctx, submitted)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected store-assigned identifier")
	}

	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recordings) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recordings))
	}
	got := recordings[0]
	if got.ID != id {
		t.Fatalf("listed id %q does not match created id %q", got.ID, id)
	}
	if got.CreatedAt == 0 {
		t.Fatal("expected creation timestamp to be set")
	}
	got.ID = ""
	got.CreatedAt = 0
	if got != submitted {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, submitted)
	}
}

func TestRecordingCreateSupersedesClientIdentifier(t *testing.T) {
	svc := newRecordingService(t, newStubBlobStore(), nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, archive.Recording{ID: "client-chosen", Title: "Leleng"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "client-chosen" {
		t.Fatal("store must assign its own identifier")
	}

	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if recordings[0].ID != id {
		t.Fatalf("expected store identifier %q, got %q", id, recordings[0].ID)
	}
}

func TestRecordingCreateFillsDefaults(t *testing.T) {
	svc := newRecordingService(t, newStubBlobStore(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, archive.Recording{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := recordings[0]
	if got.Title != "Untitled" || got.Genre != "Traditional" || got.Performer != "Unknown" || got.Duration != "0:00" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestRecordingDeleteRemovesOwnedBlob(t *testing.T) {
	blobStore := newStubBlobStore()
	svc := newRecordingService(t, blobStore, nil)
	ctx := context.Background()

	url, err := svc.Upload("igal igal.mp3", []byte("audio"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	id, err := svc.Create(ctx, archive.Recording{Title: "Igal Igal", AudioURL: url})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, id, url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recordings) != 0 {
		t.Fatalf("expected empty collection, got %d", len(recordings))
	}
	if len(blobStore.deleted) != 1 || blobStore.deleted[0] != url {
		t.Fatalf("expected blob %q deleted, got %v", url, blobStore.deleted)
	}
}

func TestRecordingDeleteSurvivesBlobFailure(t *testing.T) {
	blobStore := newStubBlobStore()
	blobStore.deleteErr = errors.New("blob store offline")
	svc := newRecordingService(t, blobStore, nil)
	ctx := context.Background()

	url := "http://127.0.0.1:7519/blobs/music/1-song.mp3"
	id, err := svc.Create(ctx, archive.Recording{Title: "Duldang", AudioURL: url})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, id, url); err != nil {
		t.Fatalf("Delete must succeed despite blob failure, got %v", err)
	}
	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recordings) != 0 {
		t.Fatal("record must be removed even when blob deletion fails")
	}
}

func TestRecordingDeleteSkipsForeignURLs(t *testing.T) {
	blobStore := newStubBlobStore()
	svc := newRecordingService(t, blobStore, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, archive.Recording{Title: "Sangbay", AudioURL: "https://example.com/ext.mp3"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(ctx, id, "https://example.com/ext.mp3"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(blobStore.deleted) != 0 {
		t.Fatalf("must not delete blobs outside our store, got %v", blobStore.deleted)
	}
}

func TestUploadWithoutCreateLeavesOrphanBlob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	docs := testsupport.MustOpenStore(t, cfg)
	blobStore, err := blobs.Open(cfg, nil)
	if err != nil {
		t.Fatalf("blobs.Open: %v", err)
	}
	svc := api.NewRecordingService(docs, blobStore, nil, notifications.NewService(cfg), nil)
	ctx := context.Background()

	// No transaction spans upload and create: abandoning the form after a
	// successful upload leaves the blob behind.
	url, err := svc.Upload("leleng.mp3", []byte("audio"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	recordings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recordings) != 0 {
		t.Fatalf("upload must not create a record, got %d", len(recordings))
	}

	path := strings.SplitN(url, "/blobs/", 2)[1]
	if _, err := os.Stat(filepath.Join(blobStore.Root(), path)); err != nil {
		t.Fatalf("expected orphaned blob on disk: %v", err)
	}
}

func TestRecordingDeleteClearsPlaybackSlot(t *testing.T) {
	player := playback.NewPlayer(nil)
	svc := newRecordingService(t, newStubBlobStore(), player)
	ctx := context.Background()

	id, err := svc.Create(ctx, archive.Recording{Title: "Tagunggu"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	player.Select(archive.Recording{ID: id, Title: "Tagunggu"})

	if err := svc.Delete(ctx, id, ""); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, _, ok := player.Current(); ok {
		t.Fatal("deleting the selected recording must vacate the playback slot")
	}
}
