package domain

import (
	"strings"
	"time"
	"unicode"
)

// CandidateItem is a discovered piece of content eligible for selection.
type CandidateItem struct {
	Title   string
	URL     string
	Snippet string
}

// Selection is the single candidate promoted by the Select stage.
type Selection struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Summary is the rewritten title and description produced by Summarize.
type Summary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MaxDescriptionLength bounds EditedContent.FinalDescription in characters.
const MaxDescriptionLength = 200

// EditedContent is the publication-ready copy. FinalDescription never exceeds
// MaxDescriptionLength characters.
type EditedContent struct {
	FinalTitle       string `json:"final_title"`
	FinalDescription string `json:"final_description"`
}

// PublishResult is the terminal outcome of a run.
type PublishResult struct {
	MediumPostURL string `json:"medium_post_url"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
}

// RunStatus enumerates how a run ended.
type RunStatus string

const (
	RunPublished     RunStatus = "published"
	RunPublishFailed RunStatus = "publish_failed"
	RunAborted       RunStatus = "aborted"
)

// RunRecord is the persisted history entry for one pipeline run.
type RunRecord struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Status      RunStatus
	SelectedURL string
	Title       string
	PostURL     string
	Message     string
}

// Slug lowercases the title and replaces every non-alphanumeric character with a hyphen.
func Slug(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
