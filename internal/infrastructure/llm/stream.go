package llm

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"ContentCurator/internal/domain"
)

const completionEventName = "completion"

// frameHeader matches "event: <name>" followed by "data:" with any whitespace between.
var frameHeader = regexp.MustCompile(`event:\s*(\w+)\s+data:\s*`)

type completionEvent struct {
	event string
	data  map[string]json.RawMessage
}

// Decode extracts the final completion text from a buffered event-stream body.
func Decode(raw string) (string, error) {
	var dec StreamDecoder
	_, _ = dec.WriteString(raw)
	return dec.Result()
}

// StreamDecoder accumulates an event-stream body and parses each frame as soon
// as its JSON body is complete. A frame body is exactly one JSON value, so
// header-like text inside a string never ends a frame. A body that is not
// valid JSON is skipped up to the next frame header.
type StreamDecoder struct {
	buf     strings.Builder
	pending int
	events  []completionEvent
}

// Write appends a chunk of the response body. It never fails.
func (d *StreamDecoder) Write(p []byte) (int, error) {
	d.buf.Write(p)
	d.scan(false)
	return len(p), nil
}

// WriteString is the string form of Write.
func (d *StreamDecoder) WriteString(s string) (int, error) {
	d.buf.WriteString(s)
	d.scan(false)
	return len(s), nil
}

// Result closes the trailing frame and returns the payload of the second-to-last
// completion frame. The service terminates every stream with an empty completion
// marker, so the last frame is never the answer.
func (d *StreamDecoder) Result() (string, error) {
	d.scan(true)

	var completions []completionEvent
	for _, ev := range d.events {
		if ev.event == completionEventName {
			completions = append(completions, ev)
		}
	}
	if len(completions) < 2 {
		return "", &domain.DecodeError{Reason: "completion stream", Err: domain.ErrNoCompletion}
	}

	chosen := completions[len(completions)-2]
	raw, ok := chosen.data["completion"]
	if !ok {
		return "", &domain.DecodeError{Reason: "completion stream", Err: domain.ErrNoCompletion}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil || text == "" {
		return "", &domain.DecodeError{Reason: "completion stream", Err: domain.ErrNoCompletion}
	}
	return text, nil
}

// scan parses frames from the unread part of the buffer. A body cut short by
// the end of the buffer waits for more input unless final is set, in which
// case it is treated as malformed.
func (d *StreamDecoder) scan(final bool) {
	text := d.buf.String()
	for {
		h := frameHeader.FindStringSubmatchIndex(text[d.pending:])
		if h == nil {
			return
		}
		name := text[d.pending+h[2] : d.pending+h[3]]
		bodyStart := d.pending + h[1]

		body, n, err := nextValue(text[bodyStart:])
		switch {
		case err == nil:
			d.appendFrame(name, body)
			d.pending = bodyStart + n
		case truncated(err) && !final:
			return
		default:
			d.pending = bodyStart
		}
	}
}

// nextValue reads one JSON value from the start of s and reports how many
// bytes it used.
func nextValue(s string) (json.RawMessage, int, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, 0, err
	}
	return raw, int(dec.InputOffset()), nil
}

func truncated(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (d *StreamDecoder) appendFrame(name string, body json.RawMessage) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return
	}
	d.events = append(d.events, completionEvent{event: name, data: data})
}
