package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMusic()
	c.normalizeImport()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMusic() {
	c.Music.AppName = strings.TrimSpace(c.Music.AppName)
	if c.Music.AppName == "" {
		c.Music.AppName = defaultMusicAppName
	}
	c.Music.OsascriptBinary = strings.TrimSpace(c.Music.OsascriptBinary)
	if c.Music.OsascriptBinary == "" {
		c.Music.OsascriptBinary = defaultOsascriptBinary
	}
}

func (c *Config) normalizeImport() {
	encodings := make([]string, 0, len(c.Import.Encodings))
	seen := make(map[string]struct{}, len(c.Import.Encodings))
	for _, name := range c.Import.Encodings {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		encodings = append(encodings, name)
	}
	if len(encodings) == 0 {
		encodings = append(encodings, DefaultEncodings...)
	}
	c.Import.Encodings = encodings
}

func (c *Config) normalizeHistory() error {
	path := strings.TrimSpace(c.History.Path)
	if path == "" {
		c.History.Path = filepath.Join(c.Paths.StateDir, defaultHistoryFileName)
		return nil
	}
	var err error
	if c.History.Path, err = expandPath(path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "text":
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
