package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with. Business failures
// (no draft to publish, malformed snapshot) come back as Success=false with
// HTTP 200; only transport level problems use non-200 statuses.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("Failed to marshal response",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, message string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, message string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: message,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, fe.Field())
		}
		h.errorResponse(w, r, fmt.Sprintf("ungültige Eingabe in: %s", strings.Join(fields, ", ")))
		return
	}
	h.errorResponse(w, r, err.Error())
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Internal server error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "Interner Serverfehler",
	})
}
