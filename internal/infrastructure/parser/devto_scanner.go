package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/scanner"
)

const (
	devtoBaseURL      = "https://dev.to"
	defaultLimit      = 5
	snippetLimit      = 200
	noPreview         = "No preview available"
	fallbackURLOption = "fallbackUrl"
	browserUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var aiKeywords = []string{"ai", "artificial intelligence", "machine learning", "ml"}

// DevtoScanner reads story cards from dev.to tag feeds.
type DevtoScanner struct {
	client *http.Client
	logger *slog.Logger
}

// NewDevtoScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewDevtoScanner(client *http.Client, logger *slog.Logger) *DevtoScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &DevtoScanner{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (d *DevtoScanner) Name() string {
	return "devto"
}

// Scan collects up to req.Limit stories per feed. When the feeds yield
// nothing it falls back to the page in the fallbackUrl option, keeping only
// AI-related titles.
func (d *DevtoScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.CandidateItem, error) {
	if len(req.Feeds) == 0 {
		return nil, fmt.Errorf("no feeds provided for site %s", req.SiteName)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var results []domain.CandidateItem
	for _, feed := range req.Feeds {
		doc, err := d.fetchDocument(ctx, feed.URL)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", feed.Name, err)
		}

		items := extractStories(doc, feed.URL, limit, nil)
		d.debug("feed scanned", "feed", feed.Name, "stories", doc.Find(".crayons-story").Length(), "items", len(items))
		results = append(results, items...)
	}

	if len(results) > 0 {
		return results, nil
	}

	fallbackURL := req.Options[fallbackURLOption]
	if fallbackURL == "" {
		return results, nil
	}

	d.debug("no stories in feeds, trying fallback page", "url", fallbackURL)
	doc, err := d.fetchDocument(ctx, fallbackURL)
	if err != nil {
		d.debug("fallback page failed", "error", err)
		return nil, nil
	}
	return extractStories(doc, fallbackURL, limit, isAIRelated), nil
}

func (d *DevtoScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dev.to returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractStories(doc *goquery.Document, pageURL string, limit int, keep func(string) bool) []domain.CandidateItem {
	base := baseURL(pageURL)
	var items []domain.CandidateItem

	doc.Find(".crayons-story").EachWithBreak(func(_ int, story *goquery.Selection) bool {
		item, ok := parseStory(story, base)
		if !ok {
			return true
		}
		if keep != nil && !keep(item.Title) {
			return true
		}
		items = append(items, item)
		return len(items) < limit
	})

	return items
}

func parseStory(story *goquery.Selection, base string) (domain.CandidateItem, bool) {
	link := story.Find("h3.crayons-story__title a")
	if link.Length() == 0 {
		link = story.Find(".crayons-story__title a")
	}
	if link.Length() == 0 {
		link = story.Find("h2 a, h3 a")
	}
	link = link.First()

	title := strings.TrimSpace(link.Text())
	href, _ := link.Attr("href")
	storyURL := absoluteURL(base, strings.TrimSpace(href))
	if title == "" || storyURL == "" {
		return domain.CandidateItem{}, false
	}

	tags := story.Find(".crayons-story__tags .crayons-tag").Map(func(_ int, tag *goquery.Selection) string {
		return strings.ReplaceAll(strings.TrimSpace(tag.Text()), "#", "")
	})
	snippet := strings.Join(tags, ", ")
	if snippet == "" {
		snippet = strings.TrimSpace(story.Find(".crayons-story__tertiary.fs-xs, .crayons-story__bottom .crayons-story__tertiary").Text())
	}
	if snippet == "" {
		snippet = noPreview
	}

	return domain.CandidateItem{
		Title:   title,
		URL:     storyURL,
		Snippet: truncateRunes(snippet, snippetLimit),
	}, true
}

func absoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}

func baseURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return devtoBaseURL
	}
	return parsed.Scheme + "://" + parsed.Host
}

func isAIRelated(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range aiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func (d *DevtoScanner) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
