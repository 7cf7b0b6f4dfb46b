package wecom

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSuite       = errors.New("wecom suite is not configured")
	ErrSuiteTicketMissing = errors.New("wecom suite ticket has not been received yet")
	ErrEmptySuiteTicket   = errors.New("wecom suite ticket is empty")
	ErrNotStored          = errors.New("wecom value not found in store")
	ErrInvalidSuiteConfig = errors.New("invalid wecom suite configuration")
	ErrLoadSuites         = errors.New("failed to load wecom suites file")
	ErrMissingCorpID      = errors.New("wecom corp ID is required")
	ErrMissingPermanent   = errors.New("wecom permanent code is required")
	ErrRequestFailed      = errors.New("wecom request failed")
	ErrInvalidResponse    = errors.New("invalid wecom response")

	// ErrAPI matches every *APIError through errors.Is.
	ErrAPI = errors.New("wecom api error")
)

// Error codes that mean the suite access token can no longer be used.
const (
	CodeInvalidSuiteToken = 40082
	CodeSuiteTokenExpired = 42009
)

// APIError is a non-zero errcode returned by WeCom.
type APIError struct {
	API     string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wecom %s: errcode=%d errmsg=%s", e.API, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// TokenInvalid reports whether the error was caused by a stale suite access token.
func (e *APIError) TokenInvalid() bool {
	return e.Code == CodeInvalidSuiteToken || e.Code == CodeSuiteTokenExpired
}

// IsAPIError returns the *APIError wrapped in err, if any.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
