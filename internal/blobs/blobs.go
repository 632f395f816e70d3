package blobs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"lepa/internal/config"
	"lepa/internal/logging"
	"lepa/internal/textutil"
)

// URLPrefix is the path under which the daemon serves stored blobs.
const URLPrefix = "/blobs/"

// Service stores uploaded files on the local filesystem and addresses them
// with durable public URLs served by the daemon.
type Service struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// Open prepares the blob store rooted at the configured directory.
func Open(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("blobs: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	root := cfg.Paths.BlobDir
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %q: %w", root, err)
	}
	if err := unix.Access(root, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return nil, fmt.Errorf("blob root %q is not accessible: %w", root, err)
	}

	return &Service{
		root:    root,
		baseURL: strings.TrimRight(cfg.Blobs.PublicBaseURL, "/"),
		logger:  logging.NewComponentLogger(logger, "blobs"),
	}, nil
}

// Root returns the directory files are stored under.
func (s *Service) Root() string {
	return s.root
}

// Upload writes file bytes under a name derived from the current time and the
// sanitized original filename, then returns the durable public URL. A failed
// upload yields ErrUpload and the result must not be attached to any record.
func (s *Service) Upload(folder Folder, filename string, data []byte) (string, error) {
	if err := folder.Validate(); err != nil {
		return "", Upload("validate folder", err)
	}
	if len(data) == 0 {
		return "", Upload("read file", errors.New("no bytes provided"))
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), textutil.SanitizeFileName(filename))
	path := string(folder) + "/" + name
	if err := s.Put(path, data); err != nil {
		return "", Upload("store "+path, err)
	}

	url := s.PublicURL(path)
	s.logger.Info("blob stored",
		logging.String("path", path),
		logging.Int("bytes", len(data)))
	return url, nil
}

// Put writes bytes at the given store path, creating parent folders as needed.
func (s *Service) Put(path string, data []byte) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create blob folder: %w", err)
	}

	// Write atomically via temp file so readers never see partial uploads.
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize blob: %w", err)
	}
	return nil
}

// PublicURL returns the fetch URL for a stored path.
func (s *Service) PublicURL(path string) string {
	return s.baseURL + URLPrefix + strings.TrimLeft(path, "/")
}

// Owns reports whether a URL recognizably points into this blob store.
func (s *Service) Owns(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	return strings.HasPrefix(url, s.baseURL+URLPrefix)
}

// Delete removes a blob addressed by public URL or store path.
func (s *Service) Delete(urlOrPath string) error {
	path := strings.TrimSpace(urlOrPath)
	if path == "" {
		return errors.New("blob reference is empty")
	}
	if strings.HasPrefix(path, s.baseURL+URLPrefix) {
		path = strings.TrimPrefix(path, s.baseURL+URLPrefix)
	}

	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("blob %s not found: %w", path, err)
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	s.logger.Debug("blob removed", logging.String("path", path))
	return nil
}

// resolve maps a store path onto the filesystem and rejects escapes.
func (s *Service) resolve(path string) (string, error) {
	cleaned := filepath.Clean(strings.TrimLeft(strings.TrimSpace(path), "/"))
	if cleaned == "." || cleaned == "" {
		return "", errors.New("blob path is empty")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("blob path %q escapes the store", path)
	}
	return filepath.Join(s.root, cleaned), nil
}
