package editionlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zhangzhonghe/apitable/pkg/pg"
)

// Store persists changelog entries.
type Store interface {
	// Insert writes a new entry and fills in ID, CreatedAt and UpdatedAt.
	Insert(ctx context.Context, entry *Changelog) error

	// SelectLast returns the entry with the highest ID for the pair.
	// Returns ErrChangelogNotFound if there is none.
	SelectLast(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error)
}

// Querier is the subset of *pgxpool.Pool used by PostgresStore.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	insertChangelog = `
INSERT INTO social_edition_changelog_wecom (suite_id, paid_corp_id, edition_info)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

	selectLastChangelog = `
SELECT id, suite_id, paid_corp_id, edition_info, created_at, updated_at
FROM social_edition_changelog_wecom
WHERE suite_id = $1 AND paid_corp_id = $2
ORDER BY id DESC
LIMIT 1`
)

type postgresStore struct {
	db Querier
}

// NewPostgresStore returns a Store backed by the social_edition_changelog_wecom table.
func NewPostgresStore(db Querier) Store {
	if db == nil {
		panic("editionlog: Querier is required")
	}
	return &postgresStore{db: db}
}

func (s *postgresStore) Insert(ctx context.Context, entry *Changelog) error {
	if entry == nil {
		return errors.New("editionlog: nil changelog")
	}

	var editionInfo any
	if len(entry.EditionInfo) > 0 {
		editionInfo = string(entry.EditionInfo)
	}

	err := s.db.QueryRow(ctx, insertChangelog, entry.SuiteID, entry.PaidCorpID, editionInfo).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert edition changelog: %w", err)
	}
	return nil
}

func (s *postgresStore) SelectLast(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error) {
	var (
		entry       Changelog
		editionInfo []byte
	)
	err := s.db.QueryRow(ctx, selectLastChangelog, suiteID, paidCorpID).Scan(
		&entry.ID,
		&entry.SuiteID,
		&entry.PaidCorpID,
		&editionInfo,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrChangelogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select last edition changelog: %w", err)
	}
	if len(editionInfo) > 0 {
		entry.EditionInfo = editionInfo
	}
	return &entry, nil
}
