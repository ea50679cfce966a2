package stage

import (
	"context"
	"fmt"
	"log/slog"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

// Publish hands edited content to the publishing collaborator. It makes no
// completion call and always yields a PublishResult.
type Publish struct {
	publisher ports.Publisher
	logger    *slog.Logger
}

var _ Stage[domain.EditedContent, domain.PublishResult] = (*Publish)(nil)

// NewPublish wires the publishing collaborator.
func NewPublish(publisher ports.Publisher, logger *slog.Logger) *Publish {
	return &Publish{publisher: publisher, logger: nopLogger(logger)}
}

// Run reports failures inside the result instead of returning them.
func (p *Publish) Run(ctx context.Context, content domain.EditedContent) (domain.PublishResult, error) {
	p.logger.Info("publishing", "title", content.FinalTitle, "description", content.FinalDescription)

	if p.publisher == nil {
		return publishFailure(fmt.Errorf("publisher is not configured")), nil
	}

	result, err := p.publisher.Publish(ctx, content)
	if err != nil {
		p.logger.Error("publish failed", "error", err)
		return publishFailure(err), nil
	}

	p.logger.Info("published", "url", result.MediumPostURL, "success", result.Success)
	return result, nil
}

func publishFailure(err error) domain.PublishResult {
	return domain.PublishResult{
		MediumPostURL: "",
		Success:       false,
		Message:       fmt.Sprintf("Failed to publish: %v", err),
	}
}
