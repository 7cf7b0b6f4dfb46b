package socialtenant

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zhangzhonghe/apitable/pkg/pg"
)

// Querier is the subset of *pgxpool.Pool used by the store.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const selectByAppAndTenant = `
SELECT id, app_id, tenant_id, app_type, permanent_code, auth_mode, status, created_at, updated_at
FROM social_tenant
WHERE app_id = $1 AND tenant_id = $2 AND is_deleted = FALSE
ORDER BY id DESC
LIMIT 1`

const selectCredentials = `
SELECT permanent_code, status
FROM social_tenant
WHERE app_id = $1 AND tenant_id = $2 AND is_deleted = FALSE
ORDER BY id DESC
LIMIT 1`

// PostgresStore reads tenants from the social_tenant table.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore returns a Getter backed by db.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByAppIDAndTenantID(ctx context.Context, appID, tenantID string) (*Tenant, error) {
	if err := validateIDs(appID, tenantID); err != nil {
		return nil, err
	}

	var t Tenant
	err := s.db.QueryRow(ctx, selectByAppAndTenant, appID, tenantID).Scan(
		&t.ID,
		&t.AppID,
		&t.TenantID,
		&t.AppType,
		&t.PermanentCode,
		&t.AuthMode,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select social tenant: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) GetCredentials(ctx context.Context, appID, tenantID string) (*Credentials, error) {
	if err := validateIDs(appID, tenantID); err != nil {
		return nil, err
	}

	var c Credentials
	err := s.db.QueryRow(ctx, selectCredentials, appID, tenantID).Scan(&c.PermanentCode, &c.Status)
	if pg.IsNotFoundError(err) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select social tenant credentials: %w", err)
	}
	return &c, nil
}

func validateIDs(appID, tenantID string) error {
	if appID == "" {
		return ErrMissingAppID
	}
	if tenantID == "" {
		return ErrMissingTenantID
	}
	return nil
}
