package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the numeric error code and a human readable message.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var encodeFailureBody = []byte(`{"error":{"code":2,"kind":"internal","message":"internal server error"}}` + "\n")

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded yields a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = encodeFailureBody
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch errors.GetKind(err) {
	case errors.KindInvalidInput:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindConflict:
		return http.StatusConflict
	case errors.KindInsufficientData:
		return http.StatusUnprocessableEntity
	case errors.KindRateLimited:
		return http.StatusTooManyRequests
	case errors.KindUpstreamUnavailable:
		if code := errors.GetCode(err); code == errors.ErrCodeUpstreamUnavailable || code == errors.ErrCodeInvalidProvider {
			return http.StatusServiceUnavailable
		}

		return http.StatusBadGateway
	case errors.KindInternal, errors.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err), zap.Int("code", int(code)))

		message = "internal server error"
	}

	writeJSON(w, status, ErrorBody{
		Error: ErrorDetail{
			Code:    int(code),
			Kind:    string(code.Kind()),
			Message: message,
		},
	})
}
