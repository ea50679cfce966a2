package stage

import (
	"context"
	"errors"
	"sync"

	"ContentCurator/internal/domain"
)

type completionCall struct {
	prompt       string
	systemPrompt string
}

// fakeCompleter replies with the given text or error on every call.
type fakeCompleter struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []completionCall
}

func (f *fakeCompleter) Complete(_ context.Context, prompt, systemPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, completionCall{prompt: prompt, systemPrompt: systemPrompt})
	return f.text, f.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func unreachable() *fakeCompleter {
	return &fakeCompleter{err: &domain.RemoteError{Err: errors.New("connection refused")}}
}

func replying(text string) *fakeCompleter {
	return &fakeCompleter{text: text}
}

type fakeFetcher struct {
	text string
	urls []string
}

func (f *fakeFetcher) FetchText(_ context.Context, url string) string {
	f.urls = append(f.urls, url)
	return f.text
}

type fakePublisher struct {
	result domain.PublishResult
	err    error
	got    []domain.EditedContent
}

func (f *fakePublisher) Publish(_ context.Context, content domain.EditedContent) (domain.PublishResult, error) {
	f.got = append(f.got, content)
	return f.result, f.err
}
