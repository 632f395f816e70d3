package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAccess(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAccess() error {
	if c.Access.ViewerKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lepa/config.toml"
		}
		return fmt.Errorf("access.viewer_key is required. Set LEPA_VIEWER_KEY env var or edit %s (create with 'lepa config init')", defaultPath)
	}
	if c.Access.AdminKey == "" {
		return errors.New("access.admin_key is required. Set LEPA_ADMIN_KEY env var or the access.admin_key config value")
	}
	if c.Access.ViewerKey == c.Access.AdminKey {
		return errors.New("access.viewer_key and access.admin_key must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
