package stage

import (
	"fmt"
	"strings"

	"ContentCurator/internal/domain"
)

const (
	selectSystemPrompt    = "You are Cody, an AI-powered content analyst created by Sourcegraph. Analyze the provided articles and select the most relevant one for AI developers. You MUST respond with only valid JSON format."
	summarizeSystemPrompt = "You are Cody, an AI-powered content summarizer created by Sourcegraph. Create engaging titles and descriptions for technical articles. You MUST respond with only valid JSON format."
	editSystemPrompt      = "You are Cody, an AI-powered content editor created by Sourcegraph. Polish and optimize content for maximum engagement while maintaining technical accuracy. You MUST respond with only valid JSON format."
)

func selectPrompt(candidates []domain.CandidateItem) string {
	var list strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&list, "%d. Title: %s\n   URL: %s\n   Snippet: %s\n\n", i+1, c.Title, c.URL, c.Snippet)
	}

	return fmt.Sprintf(`Analyze these AI-related articles and select the most relevant one for developers:

%s
Select the best article. Respond with ONLY this JSON format (no other text):
{
  "selected": {
    "title": "selected article title",
    "url": "selected article url",
    "reason": "explanation for selection"
  }
}`, list.String())
}

func summarizePrompt(sel domain.Selection, content string) string {
	return fmt.Sprintf(`Create an engaging title and description for this article:

Original Title: %s
URL: %s
Content Preview: %s

Respond with ONLY this JSON format (no other text):
{
  "title": "engaging new title",
  "description": "compelling description (max 150 characters)"
}`, sel.Title, sel.URL, content)
}

func editPrompt(summary domain.Summary) string {
	return fmt.Sprintf(`Polish this content for publication:

Title: %s
Description: %s

Improve the title and description for better engagement. Ensure the description is under %d characters.

Respond with ONLY this JSON format (no other text):
{
  "final_title": "polished engaging title",
  "final_description": "optimized description under %d chars"
}`, summary.Title, summary.Description, domain.MaxDescriptionLength, domain.MaxDescriptionLength)
}
