// Package config loads, normalizes, and validates Lepa configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// LEPA_VIEWER_KEY and LEPA_ADMIN_KEY. The Config type centralizes every knob
// the daemon and CLI need, so data/blob/log directories and the access gate
// keys are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
