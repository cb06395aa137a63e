package aichat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGenerator struct {
	text    string
	err     error
	history []Turn
}

func (f *fakeGenerator) Generate(_ context.Context, history []Turn, _ string) (string, error) {
	f.history = history
	return f.text, f.err
}

func TestReply_WithoutKeyUsesFallback(t *testing.T) {
	svc := NewService(nil, nil)
	got := svc.Reply(context.Background(), ChatRequest{Message: "what classes do you run?"})

	assert.Equal(t, SourceFallback, got.Source)
	assert.NotEmpty(t, got.Message)
}

func TestReply_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Try our 7am HIIT class."}
	svc := NewService(gen, nil)

	history := make([]Turn, 15)
	for i := range history {
		history[i] = Turn{Role: "user", Content: "x"}
	}
	got := svc.Reply(context.Background(), ChatRequest{Message: "suggest a class", History: history})

	assert.Equal(t, ChatReply{Message: "Try our 7am HIIT class.", Source: SourceAI}, got)
	assert.Len(t, gen.history, maxHistory)
}

func TestReply_UpstreamFailureFallsBack(t *testing.T) {
	for _, gen := range []*fakeGenerator{
		{err: errors.New("503")},
		{text: ""},
	} {
		got := NewService(gen, nil).Reply(context.Background(), ChatRequest{Message: "diet advice"})
		assert.Equal(t, SourceFallback, got.Source)
		assert.Equal(t, Fallback("diet advice"), got.Message)
	}
}
