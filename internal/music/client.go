package music

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"amutils/internal/library"
	"amutils/internal/logging"
)

// DefaultAppName is the scripting name of the Music application.
const DefaultAppName = "Music"

const (
	replyOK       = "ok"
	replyNotFound = "notfound"
)

// Client talks to the Music application.
type Client struct {
	runner Runner
	app    string
	logger *slog.Logger
}

var _ library.Repository = (*Client)(nil)

// Option customises the Client.
type Option func(*Client)

// WithAppName addresses a differently named application, such as "iTunes".
func WithAppName(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.app = name
		}
	}
}

// NewClient constructs a Client that runs scripts through runner.
func NewClient(runner Runner, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		runner: runner,
		app:    DefaultAppName,
		logger: logging.NewComponentLogger(logger, "music"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) run(ctx context.Context, op, body string) (string, error) {
	c.logger.Debug("running script", logging.String("op", op))
	out, err := c.runner.Run(ctx, tell(c.app, body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// runTrackScript runs a script that replies "ok" or "notfound".
func (c *Client) runTrackScript(ctx context.Context, op, id, body string) error {
	out, err := c.run(ctx, op, body)
	if err != nil {
		return err
	}
	switch strings.TrimSpace(out) {
	case replyOK:
		return nil
	case replyNotFound:
		return fmt.Errorf("%s %s: %w", op, id, library.ErrTrackNotFound)
	default:
		return fmt.Errorf("%s %s: unexpected reply %q", op, id, strings.TrimSpace(out))
	}
}

// lookupTrack binds t to the track with persistent ID id or replies notfound.
func lookupTrack(id string) string {
	return fmt.Sprintf(`set matches to (every track of library playlist 1 whose persistent ID is %s)
if (count of matches) is 0 then return %q
set t to item 1 of matches`, quoteAppleScriptString(id), replyNotFound)
}
