package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

func sseServer(t *testing.T, fragments []string, body *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if body != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, f := range fragments {
			chunk := fmt.Sprintf(`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini",`+
				`"choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`, f)
			_, _ = io.WriteString(w, "data: "+chunk+"\n\n")
		}
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
}

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestStream(t *testing.T) {
	var body map[string]any
	server := sseServer(t, []string{"It ", "depends."}, &body)
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	var got []string
	err = svc.Stream(context.Background(), "question", driven.GenerateOptions{Temperature: 0}, func(f string) error {
		got = append(got, f)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"It ", "depends."}, got)
	assert.Equal(t, DefaultLLMModel, body["model"])
	assert.Equal(t, true, body["stream"])
	temp, ok := body["temperature"]
	assert.True(t, ok)
	assert.Equal(t, 0.0, temp)
}

func TestGenerate(t *testing.T) {
	server := sseServer(t, []string{"a", "b", "c"}, nil)
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "local"})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "abc", out)
	assert.Equal(t, "local", svc.ModelName())
}

func TestStream_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	err = svc.Stream(context.Background(), "p", driven.GenerateOptions{}, func(string) error { return nil })

	assert.True(t, errors.Is(err, domain.ErrLLMUnavailable))
}
