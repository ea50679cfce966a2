package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
)

func testConfig(url string) config.CompletionConfig {
	return config.CompletionConfig{
		APIKey:      "secret",
		URL:         url,
		Timeout:     5 * time.Second,
		Temperature: 0.2,
		MaxTokens:   2000,
	}
}

func TestClientComplete_WireContract(t *testing.T) {
	t.Parallel()

	var (
		gotAuth, gotContentType, gotMethod string
		gotBody                            completionRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		_, _ = io.WriteString(w, completionFrame("{\"ok\":true}")+completionFrame(""))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	text, err := client.Complete(context.Background(), "pick one", "you are an analyst")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "token secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	want := completionRequest{
		Temperature:       0.2,
		TopK:              -1,
		TopP:              -1,
		MaxTokensToSample: 2000,
		Messages: []message{
			{Speaker: "assistant", Text: "you are an analyst"},
			{Speaker: "human", Text: "pick one"},
		},
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestClientComplete_OmitsEmptySystemPrompt(t *testing.T) {
	t.Parallel()

	var gotBody completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, completionFrame("x")+completionFrame(""))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), nil).Complete(context.Background(), "hi", "")
	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, message{Speaker: "human", Text: "hi"}, gotBody.Messages[0])
}

func TestClientComplete_NonOKIsRemoteError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), nil).Complete(context.Background(), "hi", "")

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
}

func TestClientComplete_UnreachableIsRemoteError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(testConfig(url), nil).Complete(context.Background(), "hi", "")

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Zero(t, remote.StatusCode)
}

func TestClientComplete_TimeoutIsRemoteError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	_, err := NewClient(cfg, nil).Complete(context.Background(), "hi", "")

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientComplete_DecodeFailureSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, completionFrame("lonely"))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), nil).Complete(context.Background(), "hi", "")
	assert.ErrorIs(t, err, domain.ErrNoCompletion)
}

func TestClientComplete_TLSVerificationFlag(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, completionFrame("secure")+completionFrame(""))
	}))
	defer server.Close()

	strict := testConfig(server.URL)
	_, err := NewClient(strict, nil).Complete(context.Background(), "hi", "")
	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote, "self-signed certificate must be rejected by default")

	insecure := testConfig(server.URL)
	insecure.InsecureSkipVerify = true
	text, err := NewClient(insecure, nil).Complete(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "secure", text)
}

func TestClientComplete_Misconfigured(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.CompletionConfig{}, nil).Complete(context.Background(), "hi", "")

	var remote *domain.RemoteError
	assert.ErrorAs(t, err, &remote)
}
