package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// Error codes carried in the error envelope.
const (
	codeInvalidParameter = "INVALID_PARAMETER"
	codeInsufficientData = "INSUFFICIENT_DATA"
	codeUpstreamError    = "UPSTREAM_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeInternalServer   = "INTERNAL_SERVER_ERROR"
)

// responseMeta travels with every successful response.
type responseMeta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type successEnvelope struct {
	Data interface{}  `json:"data"`
	Meta responseMeta `json:"meta"`
}

type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Data: data,
		Meta: responseMeta{RequestID: requestIDFrom(r.Context()), Timestamp: time.Now()},
	})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := requestIDFrom(r.Context())
	s.Log.Warn().
		Str("request_id", requestID).
		Str("code", code).
		Int("status", status).
		Str("message", message).
		Msg("request failed")
	writeJSON(w, status, errorEnvelope{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}})
}

// respondFromErr maps the sentinel error taxonomy onto HTTP status codes.
func (s *Server) respondFromErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		s.respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
	case errors.Is(err, model.ErrInsufficientData):
		s.respondError(w, r, http.StatusUnprocessableEntity, codeInsufficientData, err.Error())
	case errors.Is(err, model.ErrFetchFailed):
		s.respondError(w, r, http.StatusBadGateway, codeUpstreamError, err.Error())
	default:
		s.respondError(w, r, http.StatusInternalServerError, codeInternalServer, err.Error())
	}
}
