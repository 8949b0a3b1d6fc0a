package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"amutils/internal/config"
	"amutils/internal/history"
	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/music"
	"amutils/internal/replace"
)

// musicLibrary is everything the commands ask of the Music application.
type musicLibrary interface {
	library.Repository
	replace.Library
	AddTracksToPlaylist(ctx context.Context, playlist string, ids []string) (int, error)
}

type libraryFactory func(cfg *config.Config, logger *slog.Logger) musicLibrary

func newMusicClient(cfg *config.Config, logger *slog.Logger) musicLibrary {
	runner := music.ExecRunner{
		Binary:  cfg.Music.OsascriptBinary,
		Timeout: cfg.ScriptTimeout(),
	}
	return music.NewClient(runner, logger, music.WithAppName(cfg.Music.AppName))
}

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	newLibrary libraryFactory
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		newLibrary:  newMusicClient,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		if c.logger != nil {
			return
		}
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logCfg := *cfg
		if c.verboseFlag != nil && *c.verboseFlag {
			logCfg.Logging.Level = "debug"
		}
		c.logger, c.loggerErr = logging.NewFromConfig(&logCfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openLibrary() (musicLibrary, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	return c.newLibrary(cfg, logger), logger, nil
}

// withWriterLock runs fn while holding the library writer lock.
func (c *commandContext) withWriterLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := library.AcquireWriter(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	return fn()
}

var errHistoryDisabled = errors.New("import history is disabled (set history.enabled = true)")

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errHistoryDisabled
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
