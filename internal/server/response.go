package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"dota-tracker/internal/middleware"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/service"
	"dota-tracker/internal/wire"
)

func ok() wire.Envelope {
	return wire.Envelope{Success: true}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"success":false,"error":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// fail reports a domain-level failure: HTTP 200 with success=false.
func fail(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, wire.Envelope{Success: false, Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, wire.Envelope{Success: false, Error: msg})
}

// writeError maps service errors onto the response envelope. Unknown errors
// are logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrPlayerNotFound):
		fail(w, "Player not found")
	case errors.Is(err, repository.ErrHeroNotFound):
		fail(w, "Hero not found")
	case errors.Is(err, service.ErrInvalidRequest):
		fail(w, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, wire.Envelope{Success: false, Error: middleware.InternalErrorMessage(r.Context())})
	}
}

// decodeBody reads a JSON request body. It writes the 400 itself and returns
// false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("malformed request body")
		badRequest(w, "Invalid JSON")
		return false
	}
	return true
}
