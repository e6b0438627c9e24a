package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"product-dashboard/internal/model"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps request bodies; a product form is a few hundred bytes.
const maxBodyBytes = 64 << 10

// internalErrorBody is sent when a response cannot be encoded.
var internalErrorBody = []byte(`{"error":"` + model.ErrCodeInternalError + `","message":"response could not be encoded"}` + "\n")

// writeJSON writes a JSON response with the given status code. The body is
// encoded before any header goes out, so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to encode response")
		status, body = http.StatusInternalServerError, internalErrorBody
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes a model.ErrorResponse with the given status code.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeValidationError reports field errors with 422.
func writeValidationError(w http.ResponseWriter, fields model.ValidationErrors, logger zerolog.Logger) {
	logger.Debug().Str("fields", fields.Error()).Msg("form rejected")

	writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
		Error:   model.ErrCodeValidationFailed,
		Message: "Product failed validation",
		Fields:  fields,
	})
}

// writeMethodNotAllowed rejects a request whose method the route does not serve.
func writeMethodNotAllowed(w http.ResponseWriter, logger zerolog.Logger, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
}

// writeDomainError maps service errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeProductNotFound, model.ErrCodeNotificationMissing:
		status = http.StatusNotFound
	case model.ErrCodeNotLoaded:
		status = http.StatusServiceUnavailable
	case model.ErrCodeDeleteNotConfirmed:
		status = http.StatusConflict
	case model.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// pathParam returns the path segment after prefix, or "" when there is none
// or it contains a further slash.
func pathParam(r *http.Request, prefix string) string {
	rest, ok := strings.CutPrefix(r.URL.Path, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// readJSON decodes the body into dst, answering 400 itself on failure.
func readJSON(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		logger.Debug().Err(err).Msg("request body rejected")
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}
