// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-brief/pkg/types"
)

func TestOpenAIBackendComplete(t *testing.T) {
	var got chatRequest
	var auth, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Two sentences here."}}]}`)
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.SummaryConfig{APIKey: "secret", BaseURL: ts.URL + "/v1/", Model: "m1"})
	p, err := BuildPrompt(longAbstract)
	require.NoError(t, err)

	out, err := b.Complete(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Two sentences here.", out)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "m1", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, p.System, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, p.User, got.Messages[1].Content)
}

func TestOpenAIBackendDefaultBaseURL(t *testing.T) {
	var path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer ts.Close()

	old := openAIDefaultBaseURL
	openAIDefaultBaseURL = ts.URL + "/openai/v1"
	t.Cleanup(func() { openAIDefaultBaseURL = old })

	b := &OpenAIBackend{APIKey: "k", Model: "m"}
	out, err := b.Complete(context.Background(), Prompt{System: "s", User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "/openai/v1/chat/completions", path)
}

func TestOpenAIBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":"slow down"}`, "429"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"malformed json", http.StatusOK, `{`, "decoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			b := &OpenAIBackend{APIKey: "k", Model: "m", BaseURL: ts.URL, Client: ts.Client()}
			_, err := b.Complete(context.Background(), Prompt{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSummarizerWithOpenAIBackend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := New(NewOpenAIBackend(types.SummaryConfig{APIKey: "k", BaseURL: ts.URL}), nil)
	assert.Nil(t, s.Summarize(context.Background(), paperWithAbstract(longAbstract)))
}
