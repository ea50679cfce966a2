package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

const (
	mediumBaseURL    = "https://medium.com/@"
	simulatedMessage = "Article published successfully (simulated)"
)

// Simulated stands in for a Medium integration: it waits a fixed delay and
// reports a post URL derived from the title.
type Simulated struct {
	profile string
	delay   time.Duration
	logger  *slog.Logger
}

var _ ports.Publisher = (*Simulated)(nil)

// NewSimulated builds the reference publisher from configuration.
func NewSimulated(cfg config.PublishConfig, logger *slog.Logger) *Simulated {
	return &Simulated{profile: cfg.Profile, delay: cfg.Delay, logger: logger}
}

// Publish returns an error only when ctx ends before the delay elapses or the
// title is empty.
func (s *Simulated) Publish(ctx context.Context, content domain.EditedContent) (domain.PublishResult, error) {
	if strings.TrimSpace(content.FinalTitle) == "" {
		return domain.PublishResult{}, fmt.Errorf("empty title")
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return domain.PublishResult{}, ctx.Err()
		}
	}

	postURL := mediumBaseURL + s.profile + "/" + domain.Slug(content.FinalTitle)
	if s.logger != nil {
		s.logger.Info("published (simulated)", "url", postURL)
	}

	return domain.PublishResult{
		MediumPostURL: postURL,
		Success:       true,
		Message:       simulatedMessage,
	}, nil
}
