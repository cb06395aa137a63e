package aichat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Generate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k123", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Stay "},{"text":"hydrated!"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("k123", "gemini-test", srv.URL, 2*time.Second)
	text, err := c.Generate(context.Background(), []Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}, "tips?")
	require.NoError(t, err)
	assert.Equal(t, "Stay hydrated!", text)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "tips?", got.Contents[2].Parts[0].Text)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "FitZone")
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient("bad", "m", srv.URL, time.Second).Generate(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiClient_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	svc := NewService(NewGeminiClient("SUPERSECRETKEY", "gemini-test", addr, time.Second), log)
	reply := svc.Reply(context.Background(), ChatRequest{Message: "hello"})

	assert.Equal(t, SourceFallback, reply.Source)
	assert.Contains(t, buf.String(), "ai chat upstream failed")
	assert.NotContains(t, buf.String(), "SUPERSECRETKEY")
}
