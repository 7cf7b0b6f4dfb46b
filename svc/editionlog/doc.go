// Package editionlog records WeCom edition changes of paying corps.
//
// Every time a corp that installed one of our suites buys, renews, upgrades
// or lets a subscription lapse, WeCom notifies the suite. The service keeps
// an append-only history of those events: one row per event holding the
// suite ID, the paid corp ID and a JSON snapshot of the corp's edition agent
// at that moment.
//
// The snapshot is either fetched from WeCom through get_auth_info using the
// tenant's permanent code, or supplied by the caller when the notification
// already carried it:
//
//	svc := editionlog.NewService(store, tenants, registry,
//		editionlog.WithLogger(log),
//	)
//
//	entry, err := svc.CreateChangelog(ctx, suiteID, corpID)
//	if errors.Is(err, editionlog.ErrTenantDisabled) {
//		// the corp uninstalled the suite
//	}
//
// LastChangelog returns the most recent entry for a suite and corp.
package editionlog
