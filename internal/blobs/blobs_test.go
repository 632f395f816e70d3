package blobs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lepa/internal/blobs"
	"lepa/internal/testsupport"
)

func openService(t *testing.T) *blobs.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	svc, err := blobs.Open(cfg, nil)
	if err != nil {
		t.Fatalf("blobs.Open: %v", err)
	}
	return svc
}

func TestUploadReturnsServedURL(t *testing.T) {
	svc := openService(t)

	url, err := svc.Upload(blobs.FolderMusic, "igal igal sea dance.mp3", []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !strings.Contains(url, "/blobs/music/") {
		t.Fatalf("expected music blob URL, got %q", url)
	}
	if !strings.HasSuffix(url, "-igal-igal-sea-dance.mp3") {
		t.Fatalf("expected sanitized filename suffix, got %q", url)
	}
	if !svc.Owns(url) {
		t.Fatalf("expected service to own %q", url)
	}

	path := strings.SplitN(url, "/blobs/", 2)[1]
	data, err := os.ReadFile(filepath.Join(svc.Root(), path))
	if err != nil {
		t.Fatalf("read stored blob: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected blob contents: %q", data)
	}
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	svc := openService(t)

	_, err := svc.Upload(blobs.Folder("videos"), "clip.mp4", []byte("x"))
	if !errors.Is(err, blobs.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}

func TestUploadRejectsEmptyBytes(t *testing.T) {
	svc := openService(t)

	if _, err := svc.Upload(blobs.FolderImages, "cover.png", nil); !errors.Is(err, blobs.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}

func TestDeleteByURL(t *testing.T) {
	svc := openService(t)

	url, err := svc.Upload(blobs.FolderImages, "houseboat.jpg", []byte("img"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if err := svc.Delete(url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(url); err == nil {
		t.Fatal("expected error deleting missing blob")
	}
}

func TestOwnsRejectsForeignURLs(t *testing.T) {
	svc := openService(t)

	for _, url := range []string{
		"https://example.com/music/track.mp3",
		"",
		"   ",
	} {
		if svc.Owns(url) {
			t.Fatalf("expected Owns to reject %q", url)
		}
	}
}

func TestPutRejectsEscapingPaths(t *testing.T) {
	svc := openService(t)

	for _, path := range []string{"../outside.mp3", "/etc/passwd", ""} {
		if err := svc.Put(path, []byte("x")); err == nil {
			t.Fatalf("expected Put to reject %q", path)
		}
	}
}

func TestParseFolder(t *testing.T) {
	if folder, err := blobs.ParseFolder(" Music "); err != nil || folder != blobs.FolderMusic {
		t.Fatalf("ParseFolder: %v %v", folder, err)
	}
	if _, err := blobs.ParseFolder("documents"); err == nil {
		t.Fatal("expected error for unknown folder")
	}
}
