package response

import (
	"encoding/json"
	"marigold/shared/constant"
	"marigold/shared/failure"
	"marigold/shared/logger"
	"net/http"
)

// Envelope holds the payload fields merged next to the "ok" flag.
// Every endpoint responds with {"ok": true, ...} or {"ok": false, "error": ...}.
type Envelope map[string]any

// WithOK sends a success response with the payload fields at the top level
func WithOK(writer http.ResponseWriter, code int, fields Envelope) {
	body := Envelope{"ok": true}
	for key, value := range fields {
		body[key] = value
	}

	response(writer, code, body)
}

// WithMessage sends a success response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{"ok": true, "message": message})
}

// WithError sends a failure response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	response(writer, code, Envelope{"ok": false, "error": err.Error()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Envelope{"ok": false, "error": constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{"ok": false, "error": constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{"ok": false, "error": constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
