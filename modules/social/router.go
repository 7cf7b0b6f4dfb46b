// Package social exposes the WeCom integration over HTTP.
package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhangzhonghe/apitable/handler"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services to mount. Nil services are skipped.
type RouterOptions struct {
	WeCom Mountable
}

// Router mounts the social integrations.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Mount("/social", social.Router(social.RouterOptions{
//		WeCom: social.NewWeComService(changelogs, registry, errHandler),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	// must precede Mount so subrouters inherit it
	r.NotFound(notFound)
	if opts.WeCom != nil {
		r.Mount("/wecom", opts.WeCom.Handle())
	}
	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.Error(handler.ErrNotFound).Render(w, r)
}
