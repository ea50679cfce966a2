package stage

import (
	"context"
	"fmt"
	"log/slog"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

// FallbackTitlePrefix is prepended to the original title when summarization degrades.
const FallbackTitlePrefix = "AI Insights: "

// Summarize rewrites the selected article's title and writes a description.
type Summarize struct {
	completer ports.Completer
	fetcher   ports.ArticleFetcher
	logger    *slog.Logger
}

var _ Stage[domain.Selection, domain.Summary] = (*Summarize)(nil)

// NewSummarize wires the completion client and the article-text collaborator.
func NewSummarize(completer ports.Completer, fetcher ports.ArticleFetcher, logger *slog.Logger) *Summarize {
	return &Summarize{completer: completer, fetcher: fetcher, logger: nopLogger(logger)}
}

// Run never fails on remote or parse errors.
func (s *Summarize) Run(ctx context.Context, sel domain.Selection) (domain.Summary, error) {
	summary, err := runTwoPhase(ctx, s.logger, sel, s.attempt, summarizeFallback)
	if err != nil {
		return domain.Summary{}, err
	}
	s.logger.Info("generated summary", "title", summary.Title)
	return summary, nil
}

func (s *Summarize) attempt(ctx context.Context, sel domain.Selection) (domain.Summary, error) {
	content := fmt.Sprintf("Content about: %s", sel.URL)
	if s.fetcher != nil {
		content = s.fetcher.FetchText(ctx, sel.URL)
	}

	text, err := complete(ctx, s.completer, summarizePrompt(sel, content), summarizeSystemPrompt)
	if err != nil {
		return domain.Summary{}, err
	}

	var summary domain.Summary
	if err := decodePayload(text, &summary); err != nil {
		return domain.Summary{}, err
	}
	if err := requireFields(
		field{"title", summary.Title},
		field{"description", summary.Description},
	); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func summarizeFallback(sel domain.Selection) domain.Summary {
	return domain.Summary{
		Title:       FallbackTitlePrefix + sel.Title,
		Description: fmt.Sprintf("Exploring %s - valuable insights for developers working with AI and modern technology.", sel.Title),
	}
}
