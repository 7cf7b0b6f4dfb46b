// Package binder fills request structs from an *http.Request.
//
// A binder is a func(r *http.Request, v any) error. Binders are composed by
// handler.Wrap and run in order; each one handles a single source:
//
//	r.Post("/wecom/suites/{suiteID}/corps/{corpID}/edition-changelogs", handler.Wrap(h,
//		handler.WithBinders[handler.Context, createRequest](
//			binder.Path(chi.URLParam), // fields tagged path:"..."
//			binder.JSON(),             // request body
//		),
//	))
//
// A binder that has nothing to read returns ErrBinderNotApplicable, which
// handler.Wrap skips. JSON does so for requests without a body, leaving the
// target's zero values in place.
package binder
