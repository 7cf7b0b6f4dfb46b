package social

import (
	"errors"
	"net/http"

	"github.com/zhangzhonghe/apitable/handler"
	"github.com/zhangzhonghe/apitable/pkg/wecom"
	"github.com/zhangzhonghe/apitable/svc/editionlog"
)

var (
	errTenantNotFound    = handler.HTTPError{Code: http.StatusNotFound, Key: "tenant_not_found", Message: "social tenant not found"}
	errTenantDisabled    = handler.HTTPError{Code: http.StatusForbidden, Key: "tenant_disabled", Message: "social tenant is disabled"}
	errChangelogNotFound = handler.HTTPError{Code: http.StatusNotFound, Key: "changelog_not_found", Message: "no edition changelog recorded"}
	errMissingSuiteID    = handler.HTTPError{Code: http.StatusBadRequest, Key: "missing_suite_id", Message: "suite ID is required"}
	errMissingCorpID     = handler.HTTPError{Code: http.StatusBadRequest, Key: "missing_paid_corp_id", Message: "paid corp ID is required"}
	errMissingTicket     = handler.HTTPError{Code: http.StatusBadRequest, Key: "missing_ticket", Message: "suite ticket is required"}
	errSuiteNotFound     = handler.HTTPError{Code: http.StatusNotFound, Key: "suite_not_found", Message: "suite is not configured"}
	errSuiteNotReady     = handler.HTTPError{Code: http.StatusServiceUnavailable, Key: "suite_ticket_missing", Message: "suite ticket has not been received yet"}
	errWeComAPI          = handler.HTTPError{Code: http.StatusBadGateway, Key: "wecom_api_error"}
)

// MapError translates editionlog and wecom errors for handler.NewErrorHandler.
func MapError(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, editionlog.ErrTenantNotFound):
		return errTenantNotFound, true
	case errors.Is(err, editionlog.ErrTenantDisabled):
		return errTenantDisabled, true
	case errors.Is(err, editionlog.ErrChangelogNotFound):
		return errChangelogNotFound, true
	case errors.Is(err, editionlog.ErrMissingSuiteID):
		return errMissingSuiteID, true
	case errors.Is(err, editionlog.ErrMissingPaidCorpID):
		return errMissingCorpID, true
	case errors.Is(err, wecom.ErrEmptySuiteTicket):
		return errMissingTicket, true
	case errors.Is(err, wecom.ErrUnknownSuite):
		return errSuiteNotFound, true
	case errors.Is(err, wecom.ErrSuiteTicketMissing):
		return errSuiteNotReady, true
	}
	if apiErr, ok := wecom.IsAPIError(err); ok {
		return errWeComAPI.WithMessage(apiErr.Error()), true
	}
	if errors.Is(err, wecom.ErrRequestFailed) || errors.Is(err, wecom.ErrInvalidResponse) {
		return errWeComAPI.WithMessage("wecom is unavailable"), true
	}
	return handler.HTTPError{}, false
}
