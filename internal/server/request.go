package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	maxBodyBytes = 1 << 20
	maxPageSize  = 1000
	maxNewsLimit = 100
)

// CompareRequest is the body of POST /market/compare.
type CompareRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=50,dive,required,max=16"`
}

// PredictRequest is the optional body of POST /predict/{symbol}.
// Days defaults to defaultPredictDays only when it is absent.
type PredictRequest struct {
	Days     *int   `json:"days,omitempty" validate:"omitempty,gte=1,lte=30"`
	Fallback string `json:"fallback" validate:"omitempty,oneof=random_walk"`
}

// SentimentRequest is the body of POST /ai/sentiment.
type SentimentRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

const defaultPredictDays = 7

// decodeBody reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set and leaves dst untouched.
func (s *Server) decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, "read request body", err)
	}

	if len(body) == 0 {
		if allowEmpty {
			return s.validateStruct(dst)
		}

		return errors.New(errors.ErrCodeMissingParameter, "request body is required")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, "malformed JSON body", err)
	}

	return s.validateStruct(dst)
}

func (s *Server) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]

			return errors.Newf(errors.ErrCodeInvalidInput, "field %s failed %q validation", first.Namespace(), first.Tag())
		}

		return errors.Wrap(errors.ErrCodeInvalidInput, "invalid request", err)
	}

	return nil
}

// queryInt parses an integer query parameter within [min, max].
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Newf(errors.ErrCodeInvalidInput, "query parameter %s must be an integer", name)
	}

	if v < min || v > max {
		return 0, errors.Newf(errors.ErrCodeInvalidInput, "query parameter %s must be between %d and %d", name, min, max)
	}

	return v, nil
}

// pathID parses a numeric route variable.
func pathID(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidInput, "%s must be a positive integer", name)
	}

	return v, nil
}

// rangeParams reads the period and interval query parameters.
func rangeParams(r *http.Request) (types.Period, types.Interval, error) {
	period := service.DefaultPeriod
	interval := service.DefaultInterval

	if raw := r.URL.Query().Get("period"); raw != "" {
		p, err := types.ParsePeriod(raw)
		if err != nil {
			return "", "", err
		}

		period = p
	}

	if raw := r.URL.Query().Get("interval"); raw != "" {
		i, err := types.ParseInterval(raw)
		if err != nil {
			return "", "", err
		}

		interval = i
	}

	return period, interval, nil
}

// pagination reads skip and limit.
func pagination(r *http.Request) (int, int, error) {
	skip, err := queryInt(r, "skip", 0, 0, 1<<30)
	if err != nil {
		return 0, 0, err
	}

	limit, err := queryInt(r, "limit", 100, 1, maxPageSize)
	if err != nil {
		return 0, 0, err
	}

	return skip, limit, nil
}
