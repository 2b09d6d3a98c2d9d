package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemini-chatbot-backend/internal/domain"
)

type capturedRequest struct {
	Model               string  `json:"model"`
	Temperature         float32 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeEndpoint(t *testing.T, captured *capturedRequest, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

const okBody = `{"choices":[{"message":{"role":"assistant","content":"Hi, I'm your assistant."}}]}`

func TestGenerate_ReturnsFirstChoice(t *testing.T) {
	var captured capturedRequest
	srv := fakeEndpoint(t, &captured, http.StatusOK, okBody)
	defer srv.Close()

	client := NewClient("test-key", srv.URL+"/", "gemini-2.5-flash", 0.7, 0)
	reply, err := client.Generate(context.Background(), []domain.Message{
		{Role: domain.RoleSystem, Content: "be nice"},
		{Role: domain.RoleUser, Content: "hello"},
	}, domain.RunConfig{})
	require.NoError(t, err)

	assert.Equal(t, "Hi, I'm your assistant.", reply)
	assert.Equal(t, "gemini-2.5-flash", captured.Model)
	assert.Equal(t, float32(0.7), captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "hello", captured.Messages[1].Content)
}

func TestGenerate_RequestOverridesDefaults(t *testing.T) {
	var captured capturedRequest
	srv := fakeEndpoint(t, &captured, http.StatusOK, okBody)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash", 0.7, 1024)
	_, err := client.Generate(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	}, domain.RunConfig{Temperature: 0.2, MaxTokens: 64})
	require.NoError(t, err)

	assert.Equal(t, float32(0.2), captured.Temperature)
	assert.Equal(t, 64, captured.MaxCompletionTokens)
}

func TestGenerate_ZeroOverridesKeepClientDefaults(t *testing.T) {
	var captured capturedRequest
	srv := fakeEndpoint(t, &captured, http.StatusOK, okBody)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash", 0.7, 1024)
	_, err := client.Generate(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	}, domain.RunConfig{})
	require.NoError(t, err)

	assert.Equal(t, float32(0.7), captured.Temperature)
	assert.Equal(t, 1024, captured.MaxCompletionTokens)
}

func TestGenerate_UpstreamFailureIsCollapsed(t *testing.T) {
	srv := fakeEndpoint(t, nil, http.StatusTooManyRequests,
		`{"error":{"message":"quota exceeded","type":"rate_limit"}}`)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash", 0.7, 0)
	_, err := client.Generate(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	}, domain.RunConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion failed")
}

func TestGenerate_NoChoicesIsAnError(t *testing.T) {
	srv := fakeEndpoint(t, nil, http.StatusOK, `{"choices":[]}`)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash", 0.7, 0)
	_, err := client.Generate(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	}, domain.RunConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion failed")
}

func TestGenerate_EmptyTranscriptRejectedLocally(t *testing.T) {
	srv := fakeEndpoint(t, nil, http.StatusOK, okBody)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash", 0.7, 0)
	_, err := client.Generate(context.Background(), nil, domain.RunConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no messages")
}
