package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/roster"
)

const requestIDHeader = "X-Request-ID"

// Reasons for failures that do not come from the roster engine
const (
	reasonInvalidRequest = "InvalidRequest"
	reasonUnauthorized   = "Unauthorized"
	reasonInternal       = "Internal"
)

var errInvalidRequest = errors.New("invalid request")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func ensureRequestID(w http.ResponseWriter, r *http.Request) string {
	if requestID := w.Header().Get(requestIDHeader); requestID != "" {
		return requestID
	}
	requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)
	return requestID
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}

// statusFor maps an error to its HTTP status and stable reason
func statusFor(err error) (int, string) {
	if errors.Is(err, errInvalidRequest) {
		return http.StatusBadRequest, reasonInvalidRequest
	}

	reason := roster.Reason(err)
	switch {
	case errors.Is(err, roster.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, reason
	case errors.Is(err, roster.ErrAssignmentNotFound),
		errors.Is(err, roster.ErrServantNotFound):
		return http.StatusNotFound, reason
	case errors.Is(err, roster.ErrServantAlreadyScheduledThisDay),
		errors.Is(err, roster.ErrAssignmentLocked),
		errors.Is(err, roster.ErrAreaNotAvailableOnDay),
		errors.Is(err, roster.ErrServantInactiveOrMissing):
		return http.StatusConflict, reason
	case reason != "":
		return http.StatusBadRequest, reason
	}
	return http.StatusInternalServerError, reasonInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, reason := statusFor(err)
	requestID := ensureRequestID(w, r)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
		// Storage and internal details stay in the logs
		message = http.StatusText(status)
	}

	writeJSON(w, status, errorResponse{Error: reason, Message: message, RequestID: requestID})
}
