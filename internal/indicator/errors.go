package indicator

import (
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

func invalidType(name, expected string) error {
	return errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected %s", name, expected)
}

func invalidWindow(name string, value int) error {
	return errors.Newf(errors.ErrCodeInvalidWindow, "%s must be a positive integer, got %d", name, value)
}

func missingParameter(format string, args ...any) error {
	return errors.Newf(errors.ErrCodeMissingParameter, format, args...)
}

func invalidThreshold(lower, upper float64) error {
	return errors.Newf(errors.ErrCodeInvalidInput, "thresholds must satisfy 0 <= lower < upper <= 100, got %.2f and %.2f", lower, upper)
}
