package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestConstructors() {
	cause := errors.New("connection reset")

	tests := []struct {
		name    string
		err     *Error
		code    ErrorCode
		message string
		cause   error
		text    string
	}{
		{
			name:    "new",
			err:     New(ErrCodeInvalidSymbol, "symbol is required"),
			code:    ErrCodeInvalidSymbol,
			message: "symbol is required",
			cause:   nil,
			text:    "[109] symbol is required",
		},
		{
			name:    "newf",
			err:     Newf(ErrCodeInvalidHorizon, "days must be within [1, %d], got %d", 30, 45),
			code:    ErrCodeInvalidHorizon,
			message: "days must be within [1, 30], got 45",
			cause:   nil,
			text:    "[108] days must be within [1, 30], got 45",
		},
		{
			name:    "wrap",
			err:     Wrap(ErrCodeMarketDataFailed, "failed to fetch bars", cause),
			code:    ErrCodeMarketDataFailed,
			message: "failed to fetch bars",
			cause:   cause,
			text:    "[701] failed to fetch bars: connection reset",
		},
		{
			name:    "wrapf",
			err:     Wrapf(ErrCodeNewsFailed, cause, "news for %s", "TSLA"),
			code:    ErrCodeNewsFailed,
			message: "news for TSLA",
			cause:   cause,
			text:    "[703] news for TSLA: connection reset",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.code, tt.err.Code)
			suite.Equal(tt.message, tt.err.Message)
			suite.Equal(tt.cause, tt.err.Unwrap())
			suite.Equal(tt.text, tt.err.Error())
			suite.Equal(tt.code.Kind(), tt.err.Kind())
		})
	}
}

func (suite *ErrorTestSuite) TestGetCodeUsesOutermostCode() {
	inner := New(ErrCodeDataNotFound, "no row")
	outer := Wrap(ErrCodeIndicatorNotFound, "indicator missing", inner)
	suite.Equal(ErrCodeIndicatorNotFound, GetCode(outer))

	// fmt wrapping keeps the coded error reachable
	suite.Equal(ErrCodeDataNotFound, GetCode(fmt.Errorf("lookup: %w", inner)))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestHasCodeIsAs() {
	cause := errors.New("timeout")
	err := Wrap(ErrCodeUpstreamUnavailable, "yahoo down", cause)

	suite.True(HasCode(err, ErrCodeUpstreamUnavailable))
	suite.False(HasCode(err, ErrCodeMarketDataFailed))
	suite.True(Is(err, cause))

	var coded *Error
	suite.Require().True(As(fmt.Errorf("wrapped: %w", err), &coded))
	suite.Equal(ErrCodeUpstreamUnavailable, coded.Code)
}

func (suite *ErrorTestSuite) TestCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidInput)
	suite.Equal(ErrorCode(150), ErrCodeInsufficientData)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorNotFound)
	suite.Equal(ErrorCode(700), ErrCodeUpstreamUnavailable)
	suite.Equal(ErrorCode(750), ErrCodeRateLimited)
}

func (suite *ErrorTestSuite) TestCodeKinds() {
	tests := []struct {
		code ErrorCode
		kind Kind
	}{
		{ErrCodeInvalidInput, KindInvalidInput},
		{ErrCodeNonMonotonicSeries, KindInvalidInput},
		{ErrCodeInvalidHorizon, KindInvalidInput},
		{ErrCodeInsufficientData, KindInsufficientData},
		{ErrCodeDataNotFound, KindNotFound},
		{ErrCodeNoDataFound, KindNotFound},
		{ErrCodeIndicatorNotFound, KindNotFound},
		{ErrCodeAlreadyExists, KindConflict},
		{ErrCodeIndicatorAlreadyExists, KindConflict},
		{ErrCodeMarketDataFailed, KindUpstreamUnavailable},
		{ErrCodeTextGeneration, KindUpstreamUnavailable},
		{ErrCodeRateLimited, KindRateLimited},
		{ErrCodeStoreFailure, KindInternal},
		{ErrCodeCacheFailure, KindInternal},
		{ErrCodeUnknown, KindUnknown},
	}

	for _, tt := range tests {
		suite.Equal(tt.kind, tt.code.Kind(), "code %d", tt.code)
	}
}

func (suite *ErrorTestSuite) TestGetKindWalksChain() {
	inner := NewInsufficientDataError(14, 3, "AAPL", "not enough bars")
	suite.Equal(KindInsufficientData, GetKind(inner))
	suite.True(IsKind(inner, KindInsufficientData))

	outer := Wrap(ErrCodeRateLimited, "upstream throttled", inner)
	suite.Equal(KindRateLimited, GetKind(outer))
	suite.True(IsInsufficientDataError(outer))
	suite.False(IsKind(nil, KindRateLimited))
}

func (suite *ErrorTestSuite) TestInsufficientDataMessages() {
	err := NewInsufficientDataErrorf(20, 5, "AAPL", "bollinger needs %d closes, got %d", 20, 5)
	suite.Equal("bollinger needs 20 closes, got 5", err.Error())
	suite.Equal(20, err.Required)
	suite.Equal(5, err.Actual)
	suite.Equal("AAPL", err.Symbol)

	suite.Equal("insufficient data for SPY: need 14 points, have 10",
		NewInsufficientDataError(14, 10, "SPY", "").Error())
	suite.Equal("insufficient data: need 26 points, have 0",
		NewInsufficientDataError(26, 0, "", "").Error())
}

func (suite *ErrorTestSuite) TestIsInsufficientDataError() {
	suite.True(IsInsufficientDataError(NewInsufficientDataError(14, 10, "SPY", "short")))
	suite.False(IsInsufficientDataError(errors.New("plain")))
	suite.False(IsInsufficientDataError(New(ErrCodeInvalidInput, "bad")))
	suite.False(IsInsufficientDataError(nil))
}
