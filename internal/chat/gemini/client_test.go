// internal/chat/gemini/client_test.go
package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		Model:           "gemini-1.5-flash-latest",
		Temperature:     0.8,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 300,
		SafetyThreshold: "BLOCK_MEDIUM_AND_ABOVE",
	}
}

func candidateResponse(text string) generateResponse {
	return generateResponse{
		Candidates: []candidate{
			{Content: content{Parts: []part{{Text: text}}}},
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestNewClient_MissingAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.APIKey = ""

	_, err := NewClient(cfg, logger.NewNoOpLogger())

	require.Error(t, err)
	stdErr, ok := err.(*cerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrCodeGeminiKeyMissing, stdErr.Code)
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(candidateResponse("Here you go! [RECOMMEND_CARS]"))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "recommend me a car")

	require.NoError(t, err)
	assert.Equal(t, "Here you go! [RECOMMEND_CARS]", text)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash-latest:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Equal(t, "recommend me a car", gotReq.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.8, gotReq.GenerationConfig.Temperature)
	assert.Equal(t, 40, gotReq.GenerationConfig.TopK)
	assert.Equal(t, 0.95, gotReq.GenerationConfig.TopP)
	assert.Equal(t, 300, gotReq.GenerationConfig.MaxOutputTokens)
	require.Len(t, gotReq.SafetySettings, 4)
	for _, s := range gotReq.SafetySettings {
		assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hi")

	require.Error(t, err)
	stdErr, ok := err.(*cerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrCodeCompletionUpstreamFailed, stdErr.Code)
}

func TestGenerate_NoRetryOnFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(candidateResponse("too late"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 20 * time.Millisecond
	client, err := NewClient(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hi")

	require.Error(t, err)
	stdErr, ok := err.(*cerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrCodeCompletionTimeout, stdErr.Code)
}

func TestGenerate_EmptyCandidatesFallback(t *testing.T) {
	tests := []struct {
		name string
		resp generateResponse
	}{
		{"no candidates", generateResponse{}},
		{"candidate without parts", generateResponse{Candidates: []candidate{{}}}},
		{"blank candidate text", candidateResponse("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.resp)
			}))
			defer srv.Close()

			client, err := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))
			require.NoError(t, err)

			text, err := client.Generate(context.Background(), "hi")

			require.NoError(t, err)
			assert.Equal(t, "Sorry, I could not generate a response.", text)
		})
	}
}
