// Package stream implements the token-paced SSE emitters for the chat
// completions and responses APIs.
//
// Each engine runs in its own goroutine and yields fully framed SSE strings
// over an unbuffered channel. Sleeps and sends select on the context, so a
// consumer disconnect stops the engine promptly; the completion callback
// fires exactly once, after the final frame has been handed to the
// consumer, and never on cancellation.
package stream

import (
	"context"
	"encoding/json"
	"time"
)

// DoneFrame terminates a chat completions stream.
const DoneFrame = "data: [DONE]\n\n"

// Tokenize splits content into streamable chunks: each run of
// non-whitespace characters is one token and each whitespace character is
// its own token, so concatenating all tokens reproduces the input exactly.
func Tokenize(content string) []string {
	var tokens []string
	var word []rune

	for _, ch := range content {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f' {
			if len(word) > 0 {
				tokens = append(tokens, string(word))
				word = word[:0]
			}
			tokens = append(tokens, string(ch))
		} else {
			word = append(word, ch)
		}
	}
	if len(word) > 0 {
		tokens = append(tokens, string(word))
	}

	return tokens
}

// formatData frames a payload as an unnamed SSE data event.
func formatData(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return "data: " + string(data) + "\n\n"
}

// formatEvent frames a payload as a named SSE event.
func formatEvent(event string, v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return "event: " + event + "\ndata: " + string(data) + "\n\n"
}

// sleepCtx pauses for d, returning false if the context is cancelled first.
// A zero duration returns immediately without consulting the context.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d == 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// send delivers one frame, returning false if the context is cancelled
// before the consumer takes it.
func send(ctx context.Context, ch chan<- string, frame string) bool {
	select {
	case ch <- frame:
		return true
	case <-ctx.Done():
		return false
	}
}
