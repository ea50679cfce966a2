package ports

import (
	"context"
	"time"

	"ContentCurator/internal/domain"
)

// Discoverer yields the candidate items for a run. An empty list is valid.
type Discoverer interface {
	Discover(ctx context.Context) ([]domain.CandidateItem, error)
}

// ArticleFetcher returns best-effort article text; it never fails.
type ArticleFetcher interface {
	FetchText(ctx context.Context, url string) string
}

// Completer sends a prompt to the remote completion service.
type Completer interface {
	Complete(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Publisher pushes edited content to the publishing platform.
type Publisher interface {
	Publish(ctx context.Context, content domain.EditedContent) (domain.PublishResult, error)
}

// RunRepository persists run outcomes for history.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RunRecord) (int64, error)
	RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}

// Notifier announces published posts to chat channels.
type Notifier interface {
	Announce(ctx context.Context, result domain.PublishResult, content domain.EditedContent) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
