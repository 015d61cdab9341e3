// internal/server/handler_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torqueup-chat/internal/chat/prompt"
	"torqueup-chat/internal/chat/router"
	"torqueup-chat/internal/common/config"
	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/common/observability"
	"torqueup-chat/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubParts struct {
	parts []models.Part
	err   error
}

func (s *stubParts) SearchByTitle(ctx context.Context, substring string, limit int) ([]models.Part, error) {
	return s.parts, s.err
}

type stubProfiles struct{}

func (stubProfiles) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	return nil, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newTestServer(t *testing.T, completion *stubCompletion, parts *stubParts) *Server {
	log := logger.NewTestLogger(t)

	chatRouter := router.New(
		&router.Config{MaxRecommendations: 4},
		prompt.NewBuilder(15),
		completion,
		parts,
		stubProfiles{},
		log,
	)

	chat := NewChatHandler(chatRouter, cerrors.NewErrorResponder(log), &observability.Observability{}, log)
	health := NewHealthHandler(map[string]Pinger{"postgres": stubPinger{}, "redis": stubPinger{}})

	return New(&config.ServerConfig{Port: 0, RequestTimeout: 5000}, chat, health, log)
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// ==========================
// Core Functionality Tests
// ==========================

func TestChatEndpoint_Success(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "Take a look! [RECOMMEND_CARS]"}, &stubParts{})

	body := `{
		"message": "something from toyota",
		"cars": [
			{"id": "1", "make": "Toyota", "model": "Corolla", "price": 14000},
			{"id": "2", "make": "Honda", "model": "Civic", "price": 16000}
		]
	}`
	rec := postChat(t, srv, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp struct {
		Response        string                 `json:"response"`
		Recommendations *models.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Take a look!", resp.Response)
	require.NotNil(t, resp.Recommendations)
	assert.Equal(t, "cars", resp.Recommendations.Type)
}

func TestChatEndpoint_WithHistory(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "What's your budget range?"}, &stubParts{})

	body := `{
		"message": "family trips",
		"context": {"previousMessages": [{"text": "I need a car", "isUser": true}]}
	}`
	rec := postChat(t, srv, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "What's your budget range?", resp["response"])
	_, hasRecs := resp["recommendations"]
	assert.False(t, hasRecs)
}

func TestChatEndpoint_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"cars": []}`},
		{"empty message", `{"message": ""}`},
		{"message wrong type", `{"message": 42}`},
		{"not json", `this is not json`},
		{"cars wrong type", `{"message": "hi", "cars": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubCompletion{reply: "ok"}, &stubParts{})

			rec := postChat(t, srv, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestChatEndpoint_UpstreamFailureIsOpaque(t *testing.T) {
	completion := &stubCompletion{err: cerrors.NewCompletionUpstreamError(429, `{"error":"quota"}`)}
	srv := newTestServer(t, completion, &stubParts{})

	rec := postChat(t, srv, `{"message": "hi"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Upstream status and body never leak to the client.
	assert.NotContains(t, rec.Body.String(), "quota")
	assert.NotContains(t, rec.Body.String(), "429")

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp["error"])
}

func TestChatEndpoint_PartsLookupFailureStillReplies(t *testing.T) {
	completion := &stubCompletion{reply: "Try these. [RECOMMEND_PARTS:brakes]"}
	parts := &stubParts{err: cerrors.NewPartsLookupFailedError(errors.New("db down"))}
	srv := newTestServer(t, completion, parts)

	rec := postChat(t, srv, `{"message": "my brakes squeak"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Try these.", resp["response"])
	_, hasRecs := resp["recommendations"]
	assert.False(t, hasRecs)
}

func TestChatEndpoint_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "ok"}, &stubParts{})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://torqueup.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatEndpoint_RequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "ok"}, &stubParts{})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"message": "hi"}`))
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

// ==========================
// Health and Metrics Tests
// ==========================

func TestHealthEndpoint_Healthy(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "ok"}, &stubParts{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["postgres"])
	assert.Equal(t, "ok", resp.Checks["redis"])
}

func TestHealthEndpoint_DegradedStore(t *testing.T) {
	log := logger.NewTestLogger(t)
	chat := NewChatHandler(nil, cerrors.NewErrorResponder(log), &observability.Observability{}, log)
	health := NewHealthHandler(map[string]Pinger{
		"postgres": stubPinger{err: errors.New("connection refused")},
		"redis":    stubPinger{},
	})
	srv := New(&config.ServerConfig{RequestTimeout: 5000}, chat, health, log)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "connection refused", resp.Checks["postgres"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubCompletion{reply: "ok"}, &stubParts{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
