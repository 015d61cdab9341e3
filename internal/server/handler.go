// internal/server/handler.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"torqueup-chat/internal/chat/router"
	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/common/metrics"
	"torqueup-chat/internal/common/observability"
	"torqueup-chat/internal/models"
)

// maxChatBodyBytes bounds the request body. Inventory snapshots are small
// but client bugs should not be able to buffer arbitrary payloads.
const maxChatBodyBytes = 1 << 20

type ChatHandler struct {
	router    *router.Router
	responder *cerrors.ErrorResponder
	obs       *observability.Observability
	logger    logger.Logger
}

func NewChatHandler(r *router.Router, responder *cerrors.ErrorResponder, obs *observability.Observability, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		router:    r,
		responder: responder,
		obs:       obs,
		logger:    log,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	status := "success"
	defer func() {
		metrics.ChatRequestsTotal.WithLabelValues(status).Inc()
		metrics.ChatRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
		h.obs.RecordRequest(r.Context(), status)
		h.obs.RecordRequestDuration(r.Context(), time.Since(start), status)
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatBodyBytes))
	if err != nil {
		status = "error"
		h.responder.Respond(w, requestID, cerrors.NewInvalidChatRequestError("failed to read request body"))
		return
	}

	if err := validateChatRequest(body); err != nil {
		status = "error"
		h.responder.Respond(w, requestID, err)
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		status = "error"
		h.responder.Respond(w, requestID, cerrors.NewInvalidChatRequestError("request body does not match the chat request shape"))
		return
	}

	output, err := h.router.Execute(r.Context(), &router.Input{
		Message:   req.Message,
		History:   req.history(),
		Inventory: ensureCars(req.Cars),
	})
	if err != nil {
		status = "error"
		h.responder.Respond(w, requestID, err)
		return
	}

	h.logger.Info("chat request completed", map[string]interface{}{
		"requestId":       requestID,
		"duration_ms":     time.Since(start).Milliseconds(),
		"recommendations": output.Recommendation != nil,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(output)
}

func ensureCars(cars []models.Car) []models.Car {
	if cars == nil {
		return []models.Car{}
	}
	return cars
}

// Pinger reports liveness of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "healthy", Checks: map[string]string{}}
	code := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
