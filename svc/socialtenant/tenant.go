// Package socialtenant looks up the WeCom corps that installed one of our
// suites. A tenant row links an application (the suite ID) and a tenant
// (the corp ID) to the permanent code needed to call WeCom on the corp's
// behalf, plus whether the integration is still enabled.
package socialtenant

import (
	"context"
	"time"
)

// Tenant is a third-party platform installation.
type Tenant struct {
	ID            int64     `json:"id"`
	AppID         string    `json:"app_id"`    // suite ID for WeCom ISV apps
	TenantID      string    `json:"tenant_id"` // paid corp ID
	AppType       string    `json:"app_type"`
	PermanentCode string    `json:"-"` // secret; never serialized
	AuthMode      int       `json:"auth_mode"`
	Status        bool      `json:"status"` // false once the corp uninstalls or is disabled
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Enabled reports whether the tenant may still be acted for.
func (t *Tenant) Enabled() bool {
	return t != nil && t.Status
}

// Getter loads a tenant by application and tenant identifiers.
type Getter interface {
	// GetByAppIDAndTenantID returns ErrTenantNotFound when no active row matches.
	GetByAppIDAndTenantID(ctx context.Context, appID, tenantID string) (*Tenant, error)
}

// Credentials are the columns that change when a corp is disabled or re-authorizes.
type Credentials struct {
	PermanentCode string
	Status        bool
}

// CredentialReader reads a tenant's current credentials.
type CredentialReader interface {
	// GetCredentials returns ErrTenantNotFound when no active row matches.
	GetCredentials(ctx context.Context, appID, tenantID string) (*Credentials, error)
}

// Source is a Getter that can also read credentials on their own.
type Source interface {
	Getter
	CredentialReader
}
