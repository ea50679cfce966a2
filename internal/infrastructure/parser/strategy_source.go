package parser

import (
	"context"
	"fmt"
	"log/slog"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
	"ContentCurator/internal/scanner"
)

// StrategySource discovers candidates by running the scanner configured for
// each site, in config order.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.Discoverer = (*StrategySource)(nil)

func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// Discover concatenates the candidates of every site. The same URL reached
// through several feeds or sites is kept once, at its first position. Any
// site failure fails the whole discovery.
func (s *StrategySource) Discover(ctx context.Context) ([]domain.CandidateItem, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	var (
		candidates []domain.CandidateItem
		seen       = make(map[string]struct{})
		duplicates int
	)
	for _, site := range s.sites {
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		found, err := strategy.Scan(ctx, requestFor(site))
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		for _, item := range found {
			if _, dup := seen[item.URL]; dup && item.URL != "" {
				duplicates++
				continue
			}
			seen[item.URL] = struct{}{}
			candidates = append(candidates, item)
		}
		s.debug("site scanned", "site", site.Name, "scanner", site.Scanner, "found", len(found))
	}

	s.debug("discovery done", "candidates", len(candidates), "duplicates", duplicates)
	return candidates, nil
}

func requestFor(site config.SiteConfig) scanner.Request {
	feeds := make([]scanner.Feed, 0, len(site.Feeds))
	for _, feed := range site.Feeds {
		feeds = append(feeds, scanner.Feed{Name: feed.Name, URL: feed.URL})
	}
	return scanner.Request{
		SiteName: site.Name,
		Feeds:    feeds,
		Limit:    site.Limit,
		Options:  site.Options,
	}
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
