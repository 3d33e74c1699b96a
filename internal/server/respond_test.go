package server

import (
	stderrors "errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", errors.New(errors.ErrCodeInvalidSymbol, "x"), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeNoDataFound, "x"), http.StatusNotFound},
		{"conflict", errors.New(errors.ErrCodeAlreadyExists, "x"), http.StatusConflict},
		{"insufficient data", &errors.InsufficientDataError{Required: 27, Actual: 3}, http.StatusUnprocessableEntity},
		{"rate limited", errors.New(errors.ErrCodeRateLimited, "x"), http.StatusTooManyRequests},
		{"bad gateway", errors.New(errors.ErrCodeTextGeneration, "x"), http.StatusBadGateway},
		{"unavailable", errors.New(errors.ErrCodeUpstreamUnavailable, "x"), http.StatusServiceUnavailable},
		{"store failure", errors.New(errors.ErrCodeStoreFailure, "x"), http.StatusInternalServerError},
		{"uncoded", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"rsi_14": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":2,"kind":"internal","message":"internal server error"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]float64{"close": 10.5})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"close":10.5}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
