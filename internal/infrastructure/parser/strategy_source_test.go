package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
	"ContentCurator/internal/scanner"
)

type stubScanner struct {
	name  string
	items []domain.CandidateItem
	err   error
	reqs  []scanner.Request
}

func (s *stubScanner) Name() string { return s.name }

func (s *stubScanner) Scan(_ context.Context, req scanner.Request) ([]domain.CandidateItem, error) {
	s.reqs = append(s.reqs, req)
	return s.items, s.err
}

func TestStrategySourceDiscover_PreservesSiteOrder(t *testing.T) {
	t.Parallel()

	a := &stubScanner{name: "a", items: []domain.CandidateItem{{Title: "A1"}, {Title: "A2"}}}
	b := &stubScanner{name: "b", items: []domain.CandidateItem{{Title: "B1"}}}
	reg := scanner.NewRegistry()
	reg.Register(a)
	reg.Register(b)

	source := NewStrategySource(reg, []config.SiteConfig{
		{Name: "site-b", Scanner: "b", Limit: 3, Feeds: []config.FeedConfig{{Name: "f", URL: "u"}}},
		{Name: "site-a", Scanner: "a"},
	}, nil)

	items, err := source.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CandidateItem{{Title: "B1"}, {Title: "A1"}, {Title: "A2"}}, items)

	require.Len(t, b.reqs, 1)
	assert.Equal(t, scanner.Request{SiteName: "site-b", Limit: 3, Feeds: []scanner.Feed{{Name: "f", URL: "u"}}}, b.reqs[0])
}

func TestStrategySourceDiscover_DropsDuplicateURLs(t *testing.T) {
	t.Parallel()

	ai := &stubScanner{name: "ai", items: []domain.CandidateItem{
		{Title: "RAG", URL: "https://dev.to/a/rag"},
		{Title: "Agents", URL: "https://dev.to/b/agents"},
	}}
	llm := &stubScanner{name: "llm", items: []domain.CandidateItem{
		{Title: "RAG again", URL: "https://dev.to/a/rag"},
		{Title: "Evals", URL: "https://dev.to/c/evals"},
	}}
	reg := scanner.NewRegistry()
	reg.Register(ai)
	reg.Register(llm)

	items, err := NewStrategySource(reg, []config.SiteConfig{
		{Name: "ai", Scanner: "ai"},
		{Name: "llm", Scanner: "llm"},
	}, nil).Discover(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"RAG", "Agents", "Evals"}, titles)
}

func TestStrategySourceDiscover_Errors(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	reg.Register(&stubScanner{name: "broken", err: errors.New("down")})

	_, err := NewStrategySource(reg, []config.SiteConfig{{Name: "s", Scanner: "missing"}}, nil).Discover(context.Background())
	assert.ErrorContains(t, err, "not registered")

	_, err = NewStrategySource(reg, []config.SiteConfig{{Name: "s", Scanner: "broken"}}, nil).Discover(context.Background())
	assert.ErrorContains(t, err, "down")

	_, err = NewStrategySource(nil, nil, nil).Discover(context.Background())
	assert.Error(t, err)
}
