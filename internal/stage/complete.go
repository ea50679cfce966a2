package stage

import (
	"context"
	"errors"

	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

var errNoCompleter = errors.New("completion client is not configured")

// complete calls the completer, reporting a missing client as a remote failure
// so the stage degrades instead of aborting.
func complete(ctx context.Context, c ports.Completer, prompt, systemPrompt string) (string, error) {
	if c == nil {
		return "", &domain.RemoteError{Err: errNoCompleter}
	}
	return c.Complete(ctx, prompt, systemPrompt)
}
