package commentary

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/golangdaddy/turbonitro/models"
)

// Config holds the commentary settings
type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"apiKey"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig enables commentary with an eight second budget
func DefaultConfig() Config {
	return Config{Enabled: true, Model: DefaultModel, Timeout: 8 * time.Second}
}

// Commentator makes one narration attempt per race and falls back to the
// local summary on error, timeout or cancellation.
type Commentator struct {
	narrator Narrator
	timeout  time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommentator wraps a narrator. A nil narrator narrates locally.
func NewCommentator(n Narrator, timeout time.Duration, logger zerolog.Logger) *Commentator {
	if n == nil {
		n = Local{}
	}
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Commentator{
		narrator: n,
		timeout:  timeout,
		logger:   logger.With().Str("component", "commentary").Logger(),
	}
}

// Request starts narrating in the background. The channel always receives exactly
// one line. A previous request still in flight is cancelled.
func (c *Commentator) Request(results []models.RaceResult) <-chan string {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	rs := append([]models.RaceResult(nil), results...)
	out := make(chan string, 1)
	go func() {
		defer cancel()
		out <- c.narrate(ctx, rs)
	}()
	return out
}

// Cancel abandons the request in flight, if any
func (c *Commentator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

type reply struct {
	text string
	err  error
}

func (c *Commentator) narrate(ctx context.Context, results []models.RaceResult) string {
	done := make(chan reply, 1)
	go func() {
		text, err := c.narrator.Narrate(ctx, results)
		done <- reply{text, err}
	}()

	select {
	case r := <-done:
		if r.err == nil && strings.TrimSpace(r.text) != "" {
			return r.text
		}
		c.logger.Warn().Err(r.err).Msg("Commentary unavailable, using local summary")
	case <-ctx.Done():
		c.logger.Warn().Err(ctx.Err()).Msg("Commentary abandoned, using local summary")
	}
	return Summary(results)
}
