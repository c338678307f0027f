package answer

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("googleapi: Error 429: rate limit exceeded"), true},
		{"quota", errors.New("quota exceeded for model"), true},
		{"server error", errors.New("Error 503: service unavailable"), true},
		{"timeout", errors.New("context deadline exceeded: timeout"), true},
		{"auth failure", errors.New("Error 401: invalid API key"), false},
		{"bad request", errors.New("Error 400: invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableError(tt.err); got != tt.want {
				t.Errorf("retryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "Iftar is at "},
					{Text: "7:28 PM."},
				},
			},
		}},
	}
	if got := responseText(resp); got != "Iftar is at 7:28 PM." {
		t.Errorf("responseText() = %q", got)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	if responseText(nil) != "" {
		t.Error("nil response should yield empty text")
	}
	if responseText(&genai.GenerateContentResponse{}) != "" {
		t.Error("no candidates should yield empty text")
	}
}
