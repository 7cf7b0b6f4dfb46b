package editionlog

import (
	"errors"

	"github.com/zhangzhonghe/apitable/svc/socialtenant"
)

var (
	ErrMissingSuiteID    = errors.New("suite ID is required")
	ErrMissingPaidCorpID = errors.New("paid corp ID is required")

	ErrChangelogNotFound = errors.New("edition changelog not found")

	// Tenant lookup failures are surfaced as-is so callers can match either package.
	ErrTenantNotFound = socialtenant.ErrTenantNotFound
	ErrTenantDisabled = socialtenant.ErrTenantDisabled

	ErrFailedToFetchEditionInfo = errors.New("failed to fetch edition info")
	ErrFailedToEncodeEdition    = errors.New("failed to encode edition info")
	ErrFailedToSaveChangelog    = errors.New("failed to save edition changelog")
)
