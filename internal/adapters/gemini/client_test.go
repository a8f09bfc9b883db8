package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	generativelanguage "google.golang.org/api/generativelanguage/v1beta"

	"github.com/scenesmith/scenesmith/config"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

func stubConfig(endpoint string) config.SynthesisConfig {
	return config.SynthesisConfig{
		Model:    "gemini-2.5-pro",
		Endpoint: endpoint,
		Timeout:  5 * time.Second,
	}
}

// newStubServer serves a canned generate-content response and records the
// request it received.
func newStubServer(t *testing.T, text string) (*httptest.Server, *generativelanguage.GenerateContentRequest) {
	t.Helper()

	captured := &generativelanguage.GenerateContentRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		resp := generativelanguage.GenerateContentResponse{
			Candidates: []*generativelanguage.Candidate{
				{
					Content: &generativelanguage.Content{
						Parts: []*generativelanguage.Part{{Text: text}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	return server, captured
}

func TestClient_GenerateScene(t *testing.T) {
	server, captured := newStubServer(t, "from manim import *\n\nclass GeneratedScene(Scene):\n    pass\n")

	client, err := NewClient(context.Background(), stubConfig(server.URL), nil)
	require.NoError(t, err)

	code, err := client.GenerateScene(context.Background(), "a spinning square")
	require.NoError(t, err)
	assert.Contains(t, code, "class GeneratedScene(Scene):")

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	sent := captured.Contents[0].Parts[0].Text
	assert.Contains(t, sent, `**User Request:** "a spinning square"`)
	assert.Contains(t, sent, "MUST be named `GeneratedScene`")
}

func TestClient_GenerateScene_StripsFences(t *testing.T) {
	server, _ := newStubServer(t, "```python\nclass GeneratedScene(Scene):\n    pass\n```\n")

	client, err := NewClient(context.Background(), stubConfig(server.URL), nil)
	require.NoError(t, err)

	code, err := client.GenerateScene(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "class GeneratedScene"), "fences should be stripped, got %q", code)
	assert.NotContains(t, code, "```")
}

func TestClient_GenerateScene_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), stubConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GenerateScene(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err), "expected upstream error, got %v", err)
}

func TestClient_GenerateScene_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), stubConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GenerateScene(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err), "expected upstream error, got %v", err)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	cfg := config.SynthesisConfig{Model: "gemini-2.5-pro", Timeout: time.Second}

	_, err := NewClient(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err), "expected configuration error, got %v", err)
}

func TestNewClient_MissingKeyFile(t *testing.T) {
	cfg := config.SynthesisConfig{
		Model:           "gemini-2.5-pro",
		CredentialsFile: "/does/not/exist.json",
		Timeout:         time.Second,
	}

	_, err := NewClient(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err), "expected configuration error, got %v", err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.NotContains(t, appErr.Message, "/does/not/exist.json", "credential paths must not leak into client messages")
}

func TestNewClient_ModelPrefix(t *testing.T) {
	server, _ := newStubServer(t, "code")

	client, err := NewClient(context.Background(), stubConfig(server.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-2.5-pro", client.Model())

	cfg := stubConfig(server.URL)
	cfg.Model = "models/custom"
	client, err = NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "models/custom", client.Model())
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fences",
			in:   "  class GeneratedScene(Scene): ...  ",
			want: "class GeneratedScene(Scene): ...",
		},
		{
			name: "python fence",
			in:   "Sure!\n```python\ncode here\n```\nEnjoy.",
			want: "code here",
		},
		{
			name: "unterminated fence",
			in:   "```python\ncode here",
			want: "code here",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}
