// Package config loads, normalizes, and validates amutils configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and checks the knobs the CLI needs: where state and logs live,
// how the Music application is scripted, and how CSV imports are decoded and
// matched.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
