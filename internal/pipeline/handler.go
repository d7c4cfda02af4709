package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/clientip"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

// Handler exposes the pipeline over HTTP.
type Handler struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewHandler creates the HTTP handler for the submission endpoint.
func NewHandler(p *Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: p,
		logger:   logger.Named("handler"),
	}
}

// successResponse is the 200 body.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// errorResponse is the body for every failure status.
type errorResponse struct {
	Error      string   `json:"error"`
	Errors     []string `json:"errors,omitempty"`
	RetryAfter int      `json:"retryAfter,omitempty"`
}

// HandleSubmit handles POST /api/submissions.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}
	defer r.Body.Close()

	clientID := clientip.FromRequest(r)
	rec, err := h.pipeline.Process(r.Context(), r.Header.Get("Origin"), clientID, r.Body)
	if err != nil {
		h.writeError(w, clientID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Reclamation submitted successfully",
		ID:      rec.ID,
	})
}

// HandleStatus handles GET /api/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.pipeline.Stats())
}

// writeError maps pipeline errors onto the response taxonomy. Transport
// failures are logged in full but surfaced generically so internals never
// reach the form.
func (h *Handler) writeError(w http.ResponseWriter, clientID string, err error) {
	status := types.HTTPStatus(err)
	resp := errorResponse{}

	var invalid *types.ValidationError
	var spamErr *types.SuspiciousContentError
	var malformed *types.MalformedRequestError

	switch {
	case errors.As(err, &invalid):
		resp.Error = "Validation failed"
		resp.Errors = invalid.Errors
	case errors.As(err, &spamErr):
		resp.Error = "Suspicious content detected"
		resp.Errors = []string{"Suspicious content detected in reclamation"}
	case errors.As(err, &malformed):
		resp.Error = "Invalid request data"
	case status == http.StatusForbidden:
		resp.Error = "Origin not allowed"
	case status == http.StatusTooManyRequests:
		resp.Error = "Too many requests, please try again later"
		resp.RetryAfter = types.RetryAfter(err)
		if resp.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
		}
	default:
		resp.Error = "Failed to submit reclamation"
		h.logger.Error("Submission failed",
			zap.String("client", clientID),
			zap.Error(err),
		)
	}

	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
