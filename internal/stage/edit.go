package stage

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

// TitleMarker is the glyph every fallback-edited title carries.
const TitleMarker = "🚀"

const ellipsis = "..."

// Edit polishes the summary into publication-ready copy.
type Edit struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ Stage[domain.Summary, domain.EditedContent] = (*Edit)(nil)

// NewEdit wires the completion client used for polishing.
func NewEdit(completer ports.Completer, logger *slog.Logger) *Edit {
	return &Edit{completer: completer, logger: nopLogger(logger)}
}

// Run always returns a description of at most domain.MaxDescriptionLength characters.
func (e *Edit) Run(ctx context.Context, summary domain.Summary) (domain.EditedContent, error) {
	edited, err := runTwoPhase(ctx, e.logger, summary, e.attempt, EditFallback)
	if err != nil {
		return domain.EditedContent{}, err
	}
	e.logger.Info("content polished", "title", edited.FinalTitle)
	return edited, nil
}

func (e *Edit) attempt(ctx context.Context, summary domain.Summary) (domain.EditedContent, error) {
	text, err := complete(ctx, e.completer, editPrompt(summary), editSystemPrompt)
	if err != nil {
		return domain.EditedContent{}, err
	}

	var edited domain.EditedContent
	if err := decodePayload(text, &edited); err != nil {
		return domain.EditedContent{}, err
	}
	if err := requireFields(
		field{"final_title", edited.FinalTitle},
		field{"final_description", edited.FinalDescription},
	); err != nil {
		return domain.EditedContent{}, err
	}

	edited.FinalDescription = clampDescription(edited.FinalDescription)
	return edited, nil
}

// EditFallback applies the local editing rule. It is a fixed point for content
// that already carries the marker and fits the length bound.
func EditFallback(summary domain.Summary) domain.EditedContent {
	title := summary.Title
	if !strings.Contains(title, TitleMarker) {
		title = TitleMarker + " " + title
	}
	return domain.EditedContent{
		FinalTitle:       title,
		FinalDescription: clampDescription(summary.Description),
	}
}

func clampDescription(desc string) string {
	if utf8.RuneCountInString(desc) <= domain.MaxDescriptionLength {
		return desc
	}
	runes := []rune(desc)
	return string(runes[:domain.MaxDescriptionLength-len(ellipsis)]) + ellipsis
}
