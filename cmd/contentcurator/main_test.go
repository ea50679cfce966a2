package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/domain"
)

func TestRunCommand_WritesResultToStdoutAndLogsToStderr(t *testing.T) {
	for _, key := range []string{
		"CONTENT_CURATOR_CONFIG", "CODY_ACCESS_TOKEN", "SOURCEGRAPH_API_URL",
		"COMPLETION_INSECURE_SKIP_VERIFY", "DATABASE_PATH", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/t/ai" {
			_, _ = w.Write([]byte(`<div class="crayons-story"><h3 class="crayons-story__title"><a href="/a/rag">RAG Notes</a></h3></div>`))
			return
		}
		_, _ = w.Write([]byte(`<article>body</article>`))
	}))
	defer site.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`
completion:
  url: http://127.0.0.1:1/unreachable
  timeout: 1s
publish:
  profile: tester
  delay: 1ms
database:
  path: %s
logging:
  level: info
sites:
  - name: devto
    scanner: devto
    feeds:
      - name: ai
        url: %s/t/ai
`, filepath.Join(dir, "runs.db"), site.URL)), 0o600))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"run", "--config", configPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	dec := json.NewDecoder(&stdout)
	var result domain.PublishResult
	require.NoError(t, dec.Decode(&result), "stdout: %s", stdout.String())
	assert.False(t, dec.More(), "stdout carries only the result")
	assert.True(t, result.Success)
	assert.Equal(t, "https://medium.com/@tester/--ai-insights--rag-notes", result.MediumPostURL)

	assert.Contains(t, stderr.String(), "run started")
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("database is locked") }

func TestCloseApplication_LogsCloseError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	closeApplication(failingCloser{}, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Contains(t, buf.String(), "close application")
	assert.Contains(t, buf.String(), "database is locked")
}
