package socialtenant_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zhangzhonghe/apitable/svc/socialtenant"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) GetByAppIDAndTenantID(ctx context.Context, appID, tenantID string) (*socialtenant.Tenant, error) {
	args := m.Called(ctx, appID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*socialtenant.Tenant), args.Error(1)
}

func (m *mockGetter) GetCredentials(ctx context.Context, appID, tenantID string) (*socialtenant.Credentials, error) {
	args := m.Called(ctx, appID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*socialtenant.Credentials), args.Error(1)
}

// fakeRow feeds Scan from a fixed slice of values.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestPostgresStore_GetByAppIDAndTenantID(t *testing.T) {
	t.Parallel()
	now := time.Date(2022, 4, 28, 10, 0, 0, 0, time.UTC)

	t.Run("scans the row", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{values: []any{int64(7), "ww-suite", "wx-corp", "ISV", "perm", 1, true, now, now}}}
		store := socialtenant.NewPostgresStore(q)

		tenant, err := store.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-corp")
		require.NoError(t, err)
		assert.Equal(t, int64(7), tenant.ID)
		assert.Equal(t, "perm", tenant.PermanentCode)
		assert.True(t, tenant.Enabled())
		assert.Equal(t, []any{"ww-suite", "wx-corp"}, q.args)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		store := socialtenant.NewPostgresStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})
		_, err := store.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrTenantNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("conn reset")
		store := socialtenant.NewPostgresStore(&fakeQuerier{row: fakeRow{err: boom}})
		_, err := store.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-corp")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, socialtenant.ErrTenantNotFound)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{}
		store := socialtenant.NewPostgresStore(q)
		_, err := store.GetByAppIDAndTenantID(context.Background(), "", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrMissingAppID)
		_, err = store.GetByAppIDAndTenantID(context.Background(), "ww-suite", "")
		assert.ErrorIs(t, err, socialtenant.ErrMissingTenantID)
		assert.Nil(t, q.args)
	})
}

func TestPostgresStore_GetCredentials(t *testing.T) {
	t.Parallel()

	t.Run("scans status and permanent code", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{values: []any{"perm-2", false}}}
		creds, err := socialtenant.NewPostgresStore(q).GetCredentials(context.Background(), "ww-suite", "wx-corp")
		require.NoError(t, err)
		assert.Equal(t, "perm-2", creds.PermanentCode)
		assert.False(t, creds.Status)
		assert.Equal(t, []any{"ww-suite", "wx-corp"}, q.args)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		store := socialtenant.NewPostgresStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})
		_, err := store.GetCredentials(context.Background(), "ww-suite", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrTenantNotFound)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		t.Parallel()
		store := socialtenant.NewPostgresStore(&fakeQuerier{})
		_, err := store.GetCredentials(context.Background(), "", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrMissingAppID)
	})
}

func TestCachedGetter(t *testing.T) {
	t.Parallel()

	tenant := func() *socialtenant.Tenant {
		return &socialtenant.Tenant{ID: 7, AppID: "ww-suite", TenantID: "wx-corp", AppType: "ISV", PermanentCode: "perm", Status: true}
	}

	t.Run("caches descriptive columns and re-reads credentials", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(tenant(), nil).Once()
		next.On("GetCredentials", mock.Anything, "ww-suite", "wx-corp").
			Return(&socialtenant.Credentials{PermanentCode: "perm", Status: true}, nil).Twice()

		g := socialtenant.NewCachedGetter(next, socialtenant.NewMemoryCache(), time.Minute)

		for range 3 {
			got, err := g.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-corp")
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, "perm", got.PermanentCode)
		}
		next.AssertExpectations(t)
	})

	t.Run("sees a tenant disabled after it was cached", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(tenant(), nil).Once()
		next.On("GetCredentials", mock.Anything, "ww-suite", "wx-corp").
			Return(&socialtenant.Credentials{PermanentCode: "perm-rotated", Status: false}, nil).Once()

		g := socialtenant.NewCachedGetter(next, socialtenant.NewMemoryCache(), time.Minute)
		ctx := context.Background()

		got, err := g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		require.NoError(t, err)
		assert.True(t, got.Enabled())

		got, err = g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		require.NoError(t, err)
		assert.False(t, got.Enabled())
		assert.Equal(t, "perm-rotated", got.PermanentCode)
		next.AssertExpectations(t)
	})

	t.Run("drops the entry once the row is gone", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(tenant(), nil).Once()
		next.On("GetCredentials", mock.Anything, "ww-suite", "wx-corp").Return(nil, socialtenant.ErrTenantNotFound).Once()
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(nil, socialtenant.ErrTenantNotFound).Once()

		g := socialtenant.NewCachedGetter(next, socialtenant.NewMemoryCache(), time.Minute)
		ctx := context.Background()

		_, err := g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		require.NoError(t, err)
		_, err = g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrTenantNotFound)
		_, err = g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		assert.ErrorIs(t, err, socialtenant.ErrTenantNotFound)
		next.AssertExpectations(t)
	})

	t.Run("never stores the permanent code", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(tenant(), nil).Once()

		cache := socialtenant.NewMemoryCache()
		g := socialtenant.NewCachedGetter(next, cache, time.Minute)

		got, err := g.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-corp")
		require.NoError(t, err)
		assert.Equal(t, "perm", got.PermanentCode)

		cached, ok := cache.Get(context.Background(), "ww-suite:wx-corp")
		require.True(t, ok)
		assert.Empty(t, cached.PermanentCode)
		assert.Equal(t, int64(7), cached.ID)
	})

	t.Run("does not cache misses", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-none").Return(nil, socialtenant.ErrTenantNotFound).Twice()

		g := socialtenant.NewCachedGetter(next, socialtenant.NewMemoryCache(), time.Minute)
		for range 2 {
			_, err := g.GetByAppIDAndTenantID(context.Background(), "ww-suite", "wx-none")
			assert.ErrorIs(t, err, socialtenant.ErrTenantNotFound)
		}
		next.AssertExpectations(t)
	})

	t.Run("invalidate forces a full reload", func(t *testing.T) {
		t.Parallel()
		next := &mockGetter{}
		next.On("GetByAppIDAndTenantID", mock.Anything, "ww-suite", "wx-corp").Return(tenant(), nil).Twice()

		g := socialtenant.NewCachedGetter(next, socialtenant.NewMemoryCache(), time.Minute)
		ctx := context.Background()

		_, err := g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		require.NoError(t, err)

		g.Invalidate(ctx, "ww-suite", "wx-corp")

		_, err = g.GetByAppIDAndTenantID(ctx, "ww-suite", "wx-corp")
		require.NoError(t, err)
		next.AssertExpectations(t)
	})

	t.Run("panics without dependencies", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { socialtenant.NewCachedGetter(nil, socialtenant.NewMemoryCache(), 0) })
		assert.Panics(t, func() { socialtenant.NewCachedGetter(&mockGetter{}, nil, 0) })
	})
}

func TestTenant_JSONOmitsPermanentCode(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(&socialtenant.Tenant{AppID: "ww-suite", PermanentCode: "perm"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "perm\"")
	assert.NotContains(t, string(data), "permanent_code")
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := socialtenant.NewMemoryCache()

	c.Set(ctx, "k", &socialtenant.Tenant{PermanentCode: "perm"}, time.Minute)
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	got.PermanentCode = "mutated"

	again, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "perm", again.PermanentCode)

	c.Delete(ctx, "k")
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "nil", nil, time.Minute)
	_, ok = c.Get(ctx, "nil")
	assert.False(t, ok)
}

func TestTenant_Enabled(t *testing.T) {
	t.Parallel()
	var nilTenant *socialtenant.Tenant
	assert.False(t, nilTenant.Enabled())
	assert.True(t, (&socialtenant.Tenant{Status: true}).Enabled())
}
