package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"lepa/internal/api"
	"lepa/internal/blobs"
	"lepa/internal/config"
	"lepa/internal/gate"
	"lepa/internal/logging"
	"lepa/internal/notifications"
	"lepa/internal/playback"
	"lepa/internal/store"
)

// Daemon owns the archive services and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	store    *store.Store
	blobs    *blobs.Service
	gate     *gate.Gate
	player   *playback.Player
	notifier notifications.Service

	recordings *api.RecordingService
	stories    *api.StoryService

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	server  *apiServer
}

// Status represents daemon runtime information.
type Status struct {
	Running    bool
	PID        int
	Role       gate.Role
	Recordings int
	Stories    int
	DBPath     string
	BlobRoot   string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	docStore, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	blobSvc, err := blobs.Open(cfg, logger)
	if err != nil {
		_ = docStore.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	player := playback.NewPlayer(logger)
	accessGate, err := gate.New(cfg, logger, player)
	if err != nil {
		_ = docStore.Close()
		return nil, fmt.Errorf("open access gate: %w", err)
	}

	notifier := notifications.NewService(cfg)

	d := &Daemon{
		cfg:        cfg,
		logger:     logger,
		store:      docStore,
		blobs:      blobSvc,
		gate:       accessGate,
		player:     player,
		notifier:   notifier,
		recordings: api.NewRecordingService(docStore, blobSvc, player, notifier, logger),
		stories:    api.NewStoryService(docStore, blobSvc, notifier, logger),
		lockPath:   filepath.Join(cfg.Paths.DataDir, "lepad.lock"),
	}
	d.lock = flock.New(d.lockPath)

	server, err := newAPIServer(cfg, d, logger)
	if err != nil {
		_ = docStore.Close()
		return nil, err
	}
	d.server = server
	return d, nil
}

// Start acquires the daemon lock and brings the API server up.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another lepa daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if d.server != nil {
		if err := d.server.start(d.ctx); err != nil {
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("lepa daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the API server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.server != nil {
		d.server.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("lepa daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound API address once the daemon has started.
func (d *Daemon) Addr() string {
	if d.server == nil {
		return ""
	}
	return d.server.addr()
}

// Recordings exposes the recording service.
func (d *Daemon) Recordings() *api.RecordingService {
	return d.recordings
}

// Stories exposes the story service.
func (d *Daemon) Stories() *api.StoryService {
	return d.stories
}

// TestNotification triggers a test notification using the current configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if d.cfg == nil {
		return false, "configuration unavailable", errors.New("configuration unavailable")
	}
	if d.cfg.Notifications.NtfyTopic == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// Status returns the current daemon status. Count failures degrade to zero so
// status stays available while the store is misbehaving.
func (d *Daemon) Status(ctx context.Context) Status {
	recordingCount, err := d.store.Count(ctx, store.CollectionRecordings)
	if err != nil {
		d.logger.Warn("recording count unavailable", logging.Error(err))
	}
	storyCount, err := d.store.Count(ctx, store.CollectionStories)
	if err != nil {
		d.logger.Warn("story count unavailable", logging.Error(err))
	}

	return Status{
		Running:    d.running.Load(),
		PID:        os.Getpid(),
		Role:       d.gate.Role(),
		Recordings: recordingCount,
		Stories:    storyCount,
		DBPath:     d.store.Path(),
		BlobRoot:   d.blobs.Root(),
	}
}
