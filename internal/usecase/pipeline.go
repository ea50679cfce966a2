package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
	"ContentCurator/internal/stage"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Discoverer ports.Discoverer
	Completer  ports.Completer
	Fetcher    ports.ArticleFetcher
	Publisher  ports.Publisher
	Repository ports.RunRepository
	Notifier   ports.Notifier
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline runs Discover → Select → Summarize → Edit → Publish.
type Pipeline struct {
	discoverer ports.Discoverer
	selector   stage.Stage[[]domain.CandidateItem, domain.Selection]
	summarizer stage.Stage[domain.Selection, domain.Summary]
	editor     stage.Stage[domain.Summary, domain.EditedContent]
	publisher  stage.Stage[domain.EditedContent, domain.PublishResult]
	repository ports.RunRepository
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		discoverer: deps.Discoverer,
		selector:   stage.NewSelect(deps.Completer, logger.With("stage", "select")),
		summarizer: stage.NewSummarize(deps.Completer, deps.Fetcher, logger.With("stage", "summarize")),
		editor:     stage.NewEdit(deps.Completer, logger.With("stage", "edit")),
		publisher:  stage.NewPublish(deps.Publisher, logger.With("stage", "publish")),
		repository: deps.Repository,
		notifier:   deps.Notifier,
		logger:     logger,
		now:        now,
	}
}

// Run executes every stage once, in order. A discovery failure or a fatal
// stage error aborts the run before Publish and is returned wrapped with the
// stage name. Recoverable stage failures never reach this level.
func (p *Pipeline) Run(ctx context.Context) (domain.PublishResult, error) {
	record := domain.RunRecord{StartedAt: p.now()}
	p.logger.Info("run started")

	result, edited, err := p.execute(ctx, &record)
	if err != nil {
		p.logger.Error("run aborted", "error", err)
		record.Status = domain.RunAborted
		record.Message = err.Error()
		p.save(ctx, record)
		return domain.PublishResult{}, err
	}

	record.PostURL = result.MediumPostURL
	record.Message = result.Message
	record.Status = domain.RunPublished
	if !result.Success {
		record.Status = domain.RunPublishFailed
		p.logger.Warn("run completed with publishing issues", "message", result.Message)
	} else {
		p.logger.Info("run completed", "url", result.MediumPostURL)
		p.announce(ctx, result, edited)
	}
	p.save(ctx, record)

	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, record *domain.RunRecord) (domain.PublishResult, domain.EditedContent, error) {
	if p.discoverer == nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("discover: discoverer is not configured")
	}

	candidates, err := p.discoverer.Discover(ctx)
	if err != nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("discover: %w", err)
	}
	p.logger.Info("step completed", "step", "discover", "candidates", len(candidates))

	selection, err := p.selector.Run(ctx, slices.Clone(candidates))
	if err != nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("select: %w", err)
	}
	record.SelectedURL = selection.URL
	p.logger.Info("step completed", "step", "select")

	summary, err := p.summarizer.Run(ctx, selection)
	if err != nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("summarize: %w", err)
	}
	p.logger.Info("step completed", "step", "summarize")

	edited, err := p.editor.Run(ctx, summary)
	if err != nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("edit: %w", err)
	}
	record.Title = edited.FinalTitle
	p.logger.Info("step completed", "step", "edit")

	result, err := p.publisher.Run(ctx, edited)
	if err != nil {
		return domain.PublishResult{}, domain.EditedContent{}, fmt.Errorf("publish: %w", err)
	}
	p.logger.Info("step completed", "step", "publish")

	return result, edited, nil
}

func (p *Pipeline) save(ctx context.Context, record domain.RunRecord) {
	if p.repository == nil {
		return
	}
	record.FinishedAt = p.now()
	if _, err := p.repository.SaveRun(context.WithoutCancel(ctx), record); err != nil {
		p.logger.Warn("persist run history", "error", err)
	}
}

func (p *Pipeline) announce(ctx context.Context, result domain.PublishResult, edited domain.EditedContent) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Announce(ctx, result, edited); err != nil {
		p.logger.Warn("announce publication", "error", err)
	}
}
