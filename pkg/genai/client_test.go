package genai

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFor(server *httptest.Server) *Client {
	return &Client{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Bonjour"}]}}]}`))
	}))
	defer server.Close()

	text, err := newClientFor(server).GenerateText("salut")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", text)
}

func TestGenerateJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"suggestions\":[]}"}]}}]}`))
	}))
	defer server.Close()

	var out struct {
		Suggestions []struct{} `json:"suggestions"`
	}
	err := newClientFor(server).GenerateJSON("analyse", &out)
	require.NoError(t, err)
	assert.NotNil(t, out.Suggestions)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	_, err := newClientFor(server).GenerateText("salut")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newClientFor(server).GenerateText("salut")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := &Client{Model: "gemini-2.0-flash", BaseURL: "http://localhost:0"}
	_, err := client.GenerateText("salut")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
