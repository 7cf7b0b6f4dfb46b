// Package handler turns typed functions into http.HandlerFunc values.
//
// A handler receives a Context and a request struct filled by binders, and
// returns a Response:
//
//	type latestRequest struct {
//		SuiteID string `path:"suiteID"`
//		CorpID  string `path:"corpID"`
//	}
//
//	func latest(ctx handler.Context, req latestRequest) handler.Response {
//		entry, err := svc.LastChangelog(ctx, req.SuiteID, req.CorpID)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(entry)
//	}
//
//	r.Get("/edition-changelogs/latest", handler.Wrap(latest,
//		handler.WithBinders[handler.Context, latestRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, latestRequest](errHandler),
//	))
//
// Responses are JSON envelopes of the form
//
//	{"data": ..., "meta": {...}, "error": {"code": "...", "message": "..."}}
//
// Errors from binders, from rendering, or returned through Fail are passed
// to the ErrorHandler. Error renders an envelope directly without logging. NewErrorHandler builds one that classifies errors
// into HTTPError values with an ErrorMapper and logs them with the request ID.
package handler
