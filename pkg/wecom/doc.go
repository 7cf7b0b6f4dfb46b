// Package wecom is a client for the WeCom (WeChat Work) third-party
// service provider API, covering what edition tracking needs: suite
// ticket bookkeeping, suite access tokens and the get_auth_info call that
// returns a corp's current paid edition.
//
// A Registry holds one Client per configured suite and resolves them by
// suite ID. Suite tickets pushed by WeCom and the access tokens minted from
// them are kept in a Store, backed by Redis in production (NewRedisStore)
// or by an in-process cache (NewMemoryStore).
//
//	reg, err := wecom.NewRegistry(suites, wecom.NewRedisStore(rdb, "socialkit:"),
//		wecom.WithBaseURL(cfg.BaseURL),
//		wecom.WithLogger(log),
//	)
//	client, err := reg.Suite("ww1234567890")
//	info, err := client.GetAuthInfo(ctx, corpID, permanentCode)
//	if agent := info.FirstEditionAgent(); agent != nil {
//		...
//	}
//
// Calls are never retried. A response carrying a non-zero errcode is
// returned as *APIError; token-related codes also evict the cached suite
// access token so the next call mints a new one.
package wecom
