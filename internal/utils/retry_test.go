package utils

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestShouldRetry(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit text", errors.New("429: rate limit exceeded"), true},
		{"bad gateway", errors.New("502 Bad Gateway"), true},
		{"timeout", errors.New("context deadline exceeded (timeout)"), true},
		{"api 500", &openai.APIError{HTTPStatusCode: 500}, true},
		{"api 429", &openai.APIError{HTTPStatusCode: 429}, true},
		{"api 400", &openai.APIError{HTTPStatusCode: 400}, false},
		{"plain failure", errors.New("invalid request"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRetry(tc.err); got != tc.want {
				t.Errorf("ShouldRetry(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
