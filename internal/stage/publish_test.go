package stage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/domain"
)

func TestPublish_PassesThroughResult(t *testing.T) {
	t.Parallel()

	want := domain.PublishResult{MediumPostURL: "https://medium.com/@me/post", Success: true, Message: "ok"}
	pub := &fakePublisher{result: want}
	content := domain.EditedContent{FinalTitle: "Post", FinalDescription: "d"}

	got, err := NewPublish(pub, nil).Run(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []domain.EditedContent{content}, pub.got)
}

func TestPublish_ErrorBecomesFailedResult(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{err: errors.New("rate limited")}
	got, err := NewPublish(pub, nil).Run(context.Background(), domain.EditedContent{FinalTitle: "Post"})
	require.NoError(t, err)
	assert.Equal(t, domain.PublishResult{Success: false, Message: "Failed to publish: rate limited"}, got)
}

func TestPublish_MissingPublisher(t *testing.T) {
	t.Parallel()

	got, err := NewPublish(nil, nil).Run(context.Background(), domain.EditedContent{FinalTitle: "Post"})
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Contains(t, got.Message, "Failed to publish")
}
