package stage

import (
	"encoding/json"
	"errors"
	"strings"

	"ContentCurator/internal/domain"
)

var errNoObject = errors.New("no JSON object in completion text")

// decodePayload reads a JSON object out of completion text. The whole text is
// tried first, then the span from the first '{' to the last '}' so prose
// around the object is tolerated.
func decodePayload(text string, v any) error {
	trimmed := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return &domain.DecodeError{Reason: "structured payload", Err: errNoObject}
	}

	if err := json.Unmarshal([]byte(trimmed[start:end+1]), v); err != nil {
		return &domain.DecodeError{Reason: "structured payload", Err: err}
	}
	return nil
}

type field struct {
	name  string
	value string
}

// requireFields returns a ValidationError for the first blank field, in order.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if domain.IsBlank(f.value) {
			return &domain.ValidationError{Field: f.name}
		}
	}
	return nil
}
