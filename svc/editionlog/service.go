package editionlog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zhangzhonghe/apitable/pkg/logger"
	"github.com/zhangzhonghe/apitable/pkg/metrics"
	"github.com/zhangzhonghe/apitable/pkg/wecom"
	"github.com/zhangzhonghe/apitable/svc/socialtenant"
)

// Service records and reads edition changelogs.
type Service interface {
	// CreateChangelog fetches the corp's current edition from WeCom and records it.
	CreateChangelog(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error)

	// CreateChangelogWithFetch records a changelog. When fetchEditionInfo is false
	// the entry is stored without a snapshot and neither the tenant nor WeCom is consulted.
	CreateChangelogWithFetch(ctx context.Context, suiteID, paidCorpID string, fetchEditionInfo bool) (*Changelog, error)

	// CreateChangelogFromAgent records agent as the snapshot without any lookup.
	CreateChangelogFromAgent(ctx context.Context, suiteID, paidCorpID string, agent *wecom.Agent) (*Changelog, error)

	// LastChangelog returns the most recent entry or ErrChangelogNotFound.
	LastChangelog(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error)
}

// TenantGetter loads the social tenant holding the corp's permanent code.
type TenantGetter interface {
	GetByAppIDAndTenantID(ctx context.Context, appID, tenantID string) (*socialtenant.Tenant, error)
}

// tenantInvalidator is implemented by caching TenantGetters.
type tenantInvalidator interface {
	Invalidate(ctx context.Context, appID, tenantID string)
}

type service struct {
	store   Store
	tenants TenantGetter
	suites  wecom.SuiteResolver
	log     *slog.Logger
}

// NewService creates a Service. Panics if store, tenants or suites is nil.
func NewService(store Store, tenants TenantGetter, suites wecom.SuiteResolver, opts ...Option) Service {
	if store == nil {
		panic("editionlog: Store is required")
	}
	if tenants == nil {
		panic("editionlog: TenantGetter is required")
	}
	if suites == nil {
		panic("editionlog: SuiteResolver is required")
	}

	s := &service{
		store:   store,
		tenants: tenants,
		suites:  suites,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("editionlog"))

	return s
}

func (s *service) CreateChangelog(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error) {
	return s.CreateChangelogWithFetch(ctx, suiteID, paidCorpID, true)
}

func (s *service) CreateChangelogWithFetch(ctx context.Context, suiteID, paidCorpID string, fetchEditionInfo bool) (*Changelog, error) {
	if err := validateIDs(suiteID, paidCorpID); err != nil {
		s.fail("validation")
		return nil, err
	}

	if !fetchEditionInfo {
		return s.save(ctx, suiteID, paidCorpID, nil, metrics.SourceNone)
	}

	agent, err := s.fetchAgent(ctx, suiteID, paidCorpID)
	if err != nil {
		return nil, err
	}

	source := metrics.SourceFetched
	if agent == nil {
		source = metrics.SourceNone
	}
	return s.save(ctx, suiteID, paidCorpID, agent, source)
}

func (s *service) CreateChangelogFromAgent(ctx context.Context, suiteID, paidCorpID string, agent *wecom.Agent) (*Changelog, error) {
	if err := validateIDs(suiteID, paidCorpID); err != nil {
		s.fail("validation")
		return nil, err
	}

	source := metrics.SourceProvided
	if agent == nil {
		source = metrics.SourceNone
	}
	return s.save(ctx, suiteID, paidCorpID, agent, source)
}

func (s *service) LastChangelog(ctx context.Context, suiteID, paidCorpID string) (*Changelog, error) {
	if err := validateIDs(suiteID, paidCorpID); err != nil {
		return nil, err
	}
	return s.store.SelectLast(ctx, suiteID, paidCorpID)
}

// fetchAgent resolves the tenant and asks WeCom for its first edition agent.
func (s *service) fetchAgent(ctx context.Context, suiteID, paidCorpID string) (*wecom.Agent, error) {
	tenant, err := s.tenants.GetByAppIDAndTenantID(ctx, suiteID, paidCorpID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			s.fail("tenant_not_found")
			return nil, ErrTenantNotFound
		}
		s.fail("tenant_lookup")
		return nil, err
	}
	if !tenant.Enabled() {
		s.fail("tenant_disabled")
		return nil, ErrTenantDisabled
	}

	client, err := s.suites.Suite(suiteID)
	if err != nil {
		s.fail("unknown_suite")
		return nil, err
	}

	info, err := client.GetAuthInfo(ctx, paidCorpID, tenant.PermanentCode)
	if err != nil {
		s.fail("wecom")
		if inv, ok := s.tenants.(tenantInvalidator); ok {
			inv.Invalidate(ctx, suiteID, paidCorpID)
		}
		s.log.WarnContext(ctx, "fetch edition info failed",
			logger.SuiteID(suiteID),
			logger.CorpID(paidCorpID),
			logger.Error(err),
		)
		return nil, errors.Join(ErrFailedToFetchEditionInfo, err)
	}

	return info.FirstEditionAgent(), nil
}

func (s *service) save(ctx context.Context, suiteID, paidCorpID string, agent *wecom.Agent, source string) (*Changelog, error) {
	editionInfo, err := encodeAgent(agent)
	if err != nil {
		s.fail("encode")
		return nil, errors.Join(ErrFailedToEncodeEdition, err)
	}

	entry := &Changelog{
		SuiteID:     suiteID,
		PaidCorpID:  paidCorpID,
		EditionInfo: editionInfo,
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		s.fail("store")
		return nil, errors.Join(ErrFailedToSaveChangelog, err)
	}

	metrics.ChangelogsCreated.WithLabelValues(source).Inc()
	s.log.InfoContext(ctx, "edition changelog recorded",
		logger.SuiteID(suiteID),
		logger.CorpID(paidCorpID),
		slog.Int64("changelog_id", entry.ID),
		slog.String("source", source),
	)

	return entry, nil
}

func (s *service) fail(reason string) {
	metrics.ChangelogFailures.WithLabelValues(reason).Inc()
}

func validateIDs(suiteID, paidCorpID string) error {
	if suiteID == "" {
		return ErrMissingSuiteID
	}
	if paidCorpID == "" {
		return ErrMissingPaidCorpID
	}
	return nil
}
