package stage

import (
	"context"
	"log/slog"
	"slices"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

// FallbackSelectReason is attached to selections made without the completion service.
const FallbackSelectReason = "Selected first article as fallback due to analysis error"

// Select promotes exactly one candidate to a Selection.
type Select struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ Stage[[]domain.CandidateItem, domain.Selection] = (*Select)(nil)

// NewSelect wires the completion client used to rank candidates.
func NewSelect(completer ports.Completer, logger *slog.Logger) *Select {
	return &Select{completer: completer, logger: nopLogger(logger)}
}

// Run fails with a FatalInputError on an empty list, before any remote call.
func (s *Select) Run(ctx context.Context, candidates []domain.CandidateItem) (domain.Selection, error) {
	if len(candidates) == 0 {
		return domain.Selection{}, &domain.FatalInputError{Stage: "select", Err: domain.ErrNoCandidates}
	}

	s.logger.Info("analyzing candidates", "count", len(candidates))
	sel, err := runTwoPhase(ctx, s.logger, slices.Clone(candidates), s.attempt, selectFallback)
	if err != nil {
		return domain.Selection{}, err
	}
	s.logger.Info("selected article", "title", sel.Title, "url", sel.URL)
	return sel, nil
}

func (s *Select) attempt(ctx context.Context, candidates []domain.CandidateItem) (domain.Selection, error) {
	text, err := complete(ctx, s.completer, selectPrompt(candidates), selectSystemPrompt)
	if err != nil {
		return domain.Selection{}, err
	}

	var payload struct {
		Selected *domain.Selection `json:"selected"`
	}
	if err := decodePayload(text, &payload); err != nil {
		return domain.Selection{}, err
	}
	if payload.Selected == nil {
		return domain.Selection{}, &domain.ValidationError{Field: "selected"}
	}
	if err := requireFields(
		field{"selected.title", payload.Selected.Title},
		field{"selected.url", payload.Selected.URL},
	); err != nil {
		return domain.Selection{}, err
	}
	return *payload.Selected, nil
}

func selectFallback(candidates []domain.CandidateItem) domain.Selection {
	first := candidates[0]
	return domain.Selection{
		Title:  first.Title,
		URL:    first.URL,
		Reason: FallbackSelectReason,
	}
}
