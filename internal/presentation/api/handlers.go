package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/application/services"
	"github.com/copymastery/copyengine/internal/domain/models"
)

// maxBodyBytes caps the request body read. Prompts are short; anything near
// this limit is abuse.
const maxBodyBytes = 1 << 20

// Handler handles HTTP requests for the generation API.
type Handler struct {
	pipeline *services.Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(pipeline *services.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read request body",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request"})
		return
	}

	resp, err := h.pipeline.Generate(r.Context(), r.Header, body)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Tools handles GET /api/tools.
func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": models.Tools(),
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// writeFailure maps the pipeline's tagged failure kinds onto the wire
// contract. Dispatch is by error identity, never by message text. Every
// branch logs the original cause before the envelope goes out.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestIDFromContext(r.Context())

	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		h.logger.Warn("request rejected, no caller identity",
			zap.String("request_id", requestID))
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})

	case errors.As(err, &validationErr):
		h.logger.Info("request failed validation",
			zap.String("request_id", requestID),
			zap.Int("issues", len(validationErr.Issues)))
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Details: validationErr.Issues,
		})

	default:
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		h.logger.Error("generation failed",
			zap.String("request_id", requestID),
			zap.Error(cause))
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error: models.GenerationFailedMessage,
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
