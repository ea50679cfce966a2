package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/domain"
)

func TestNotifierAnnounce(t *testing.T) {
	t.Parallel()

	var path, chatID, text, mode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = r.ParseForm()
		chatID, text, mode = r.PostForm.Get("chat_id"), r.PostForm.Get("text"), r.PostForm.Get("parse_mode")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier("TOKEN", "42")
	n.apiBase = server.URL

	err := n.Announce(context.Background(),
		domain.PublishResult{MediumPostURL: "https://medium.com/@me/post", Success: true},
		domain.EditedContent{FinalTitle: "Post", FinalDescription: "Desc"},
	)
	require.NoError(t, err)

	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", chatID)
	assert.Equal(t, "Markdown", mode)
	assert.Equal(t, "*Post*\nDesc\nhttps://medium.com/@me/post", text)
}

func TestNotifierAnnounce_Errors(t *testing.T) {
	t.Parallel()

	err := NewNotifier("", "").Announce(context.Background(), domain.PublishResult{}, domain.EditedContent{})
	assert.ErrorContains(t, err, "misconfigured")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer server.Close()

	n := NewNotifier("TOKEN", "42")
	n.apiBase = server.URL
	err = n.Announce(context.Background(), domain.PublishResult{}, domain.EditedContent{})
	assert.EqualError(t, err, "telegram error: 403 Forbidden: Forbidden: bot was blocked by the user")
}

func TestFormatAnnouncement_EscapesMarkdown(t *testing.T) {
	t.Parallel()

	text := formatAnnouncement(
		domain.PublishResult{MediumPostURL: "https://medium.com/@me/snake_case"},
		domain.EditedContent{FinalTitle: "Why *agents* fail", FinalDescription: "Use snake_case [sometimes]"},
	)
	assert.Equal(t, "*Why \\*agents\\* fail*\nUse snake\\_case \\[sometimes]\nhttps://medium.com/@me/snake_case", text)
}
