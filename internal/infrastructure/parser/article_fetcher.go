package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ContentCurator/internal/ports"
)

const articlePreviewLimit = 500

// articleSelectors are tried in order; the first with text wins.
var articleSelectors = []string{".crayons-article__body", "article", ".article-body", "main"}

// ArticleFetcher downloads an article page and extracts a text preview.
type ArticleFetcher struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ArticleFetcher = (*ArticleFetcher)(nil)

// NewArticleFetcher wires an HTTP client; a nil client gets a 20s timeout.
func NewArticleFetcher(client *http.Client, logger *slog.Logger) *ArticleFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ArticleFetcher{client: client, logger: logger}
}

// FetchText returns up to 500 characters of article text, or a placeholder
// naming the URL when the page cannot be read.
func (f *ArticleFetcher) FetchText(ctx context.Context, url string) string {
	text, err := f.fetch(ctx, url)
	if err != nil || text == "" {
		if f.logger != nil {
			f.logger.Debug("article fetch degraded", "url", url, "error", err)
		}
		return placeholder(url)
	}
	return text
}

func (f *ArticleFetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}

	for _, sel := range articleSelectors {
		if text := strings.TrimSpace(doc.Find(sel).Text()); text != "" {
			runes := []rune(text)
			if len(runes) > articlePreviewLimit {
				runes = runes[:articlePreviewLimit]
			}
			return string(runes), nil
		}
	}
	return "", nil
}

func placeholder(url string) string {
	return "Content about: " + url
}
