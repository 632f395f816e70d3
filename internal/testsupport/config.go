package testsupport

import (
	"path/filepath"
	"testing"

	"lepa/internal/config"
)

// Access keys used across test configurations.
const (
	ViewerKey = "test-viewer-key"
	AdminKey  = "test-admin-key"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.BlobDir = filepath.Join(base, "blobs")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Access.ViewerKey = ViewerKey
	cfgVal.Access.AdminKey = AdminKey
	cfgVal.Notifications.NtfyTopic = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAccessKeys overrides the viewer and admin keys on the test config.
func WithAccessKeys(viewer, admin string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Access.ViewerKey = viewer
		b.cfg.Access.AdminKey = admin
	}
}

// WithNtfyTopic points the test config at a notification endpoint, usually an
// httptest server URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
