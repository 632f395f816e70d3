package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAccess()
	c.normalizeBlobs()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BlobDir) == "" {
		c.Paths.BlobDir = defaultBlobDir
	}
	if c.Paths.BlobDir, err = expandPath(c.Paths.BlobDir); err != nil {
		return fmt.Errorf("paths.blob_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

// Environment values win over file values so deployments never need to
// write the shared-secret keys to disk.
func (c *Config) normalizeAccess() {
	if value, ok := os.LookupEnv("LEPA_VIEWER_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Access.ViewerKey = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("LEPA_ADMIN_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Access.AdminKey = strings.TrimSpace(value)
	}
	c.Access.ViewerKey = strings.TrimSpace(c.Access.ViewerKey)
	c.Access.AdminKey = strings.TrimSpace(c.Access.AdminKey)
}

func (c *Config) normalizeBlobs() {
	c.Blobs.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.Blobs.PublicBaseURL), "/")
	if c.Blobs.PublicBaseURL == "" {
		c.Blobs.PublicBaseURL = "http://" + c.Paths.APIBind
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}
