package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown  ErrorCode = 1
	ErrCodeInternal ErrorCode = 2

	// Validation errors (100-199)
	ErrCodeInvalidInput         ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeEmptySeries          ErrorCode = 102
	ErrCodeNonMonotonicSeries   ErrorCode = 103
	ErrCodeInvalidBar           ErrorCode = 104
	ErrCodeInvalidPeriod        ErrorCode = 105
	ErrCodeInvalidInterval      ErrorCode = 106
	ErrCodeInvalidWindow        ErrorCode = 107
	ErrCodeInvalidHorizon       ErrorCode = 108
	ErrCodeInvalidSymbol        ErrorCode = 109
	ErrCodeInvalidType          ErrorCode = 110
	ErrCodeMissingParameter     ErrorCode = 111
	ErrCodeInvalidPrice         ErrorCode = 112
	ErrCodeInsufficientData     ErrorCode = 150

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound   ErrorCode = 200
	ErrCodeNoDataFound    ErrorCode = 201
	ErrCodeAlreadyExists  ErrorCode = 202
	ErrCodeQueryFailed    ErrorCode = 203
	ErrCodeStoreFailure   ErrorCode = 204
	ErrCodeCacheFailure   ErrorCode = 205
	ErrCodeCacheMalformed ErrorCode = 206

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Upstream collaborator errors (700-799)
	ErrCodeUpstreamUnavailable ErrorCode = 700
	ErrCodeMarketDataFailed    ErrorCode = 701
	ErrCodeMarketDataParse     ErrorCode = 702
	ErrCodeNewsFailed          ErrorCode = 703
	ErrCodeOverviewFailed      ErrorCode = 704
	ErrCodeTextGeneration      ErrorCode = 705
	ErrCodeInvalidProvider     ErrorCode = 706
	ErrCodeRateLimited         ErrorCode = 750
)

// Kind groups error codes into the categories callers act upon.
type Kind string

const (
	KindUnknown             Kind = "unknown"
	KindInvalidInput        Kind = "invalid_input"
	KindInsufficientData    Kind = "insufficient_data"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindRateLimited         Kind = "rate_limited"
	KindInternal            Kind = "internal"
)

// Kind returns the category of the code.
func (c ErrorCode) Kind() Kind {
	switch {
	case c == ErrCodeInsufficientData:
		return KindInsufficientData
	case c >= 100 && c < 200:
		return KindInvalidInput
	case c == ErrCodeDataNotFound, c == ErrCodeNoDataFound, c == ErrCodeIndicatorNotFound:
		return KindNotFound
	case c == ErrCodeAlreadyExists, c == ErrCodeIndicatorAlreadyExists:
		return KindConflict
	case c == ErrCodeRateLimited:
		return KindRateLimited
	case c >= 700 && c < 800:
		return KindUpstreamUnavailable
	case c == ErrCodeUnknown:
		return KindUnknown
	default:
		return KindInternal
	}
}
