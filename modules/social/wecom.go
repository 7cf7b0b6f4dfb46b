package social

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhangzhonghe/apitable/binder"
	"github.com/zhangzhonghe/apitable/handler"
	"github.com/zhangzhonghe/apitable/pkg/wecom"
	"github.com/zhangzhonghe/apitable/svc/editionlog"
)

// TicketSetter stores suite tickets pushed by WeCom.
type TicketSetter interface {
	SetSuiteTicket(ctx context.Context, suiteID, ticket string) error
}

// WeComService serves edition changelogs and suite tickets.
type WeComService struct {
	changelogs   editionlog.Service
	tickets      TicketSetter
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewWeComService panics if changelogs or tickets is nil. A nil errorHandler
// falls back to handler.NewErrorHandler with MapError.
func NewWeComService(changelogs editionlog.Service, tickets TicketSetter, errorHandler handler.ErrorHandler[handler.Context]) *WeComService {
	if changelogs == nil {
		panic("social: editionlog.Service is required")
	}
	if tickets == nil {
		panic("social: TicketSetter is required")
	}
	if errorHandler == nil {
		errorHandler = handler.NewErrorHandler(nil, MapError)
	}
	return &WeComService{
		changelogs:   changelogs,
		tickets:      tickets,
		errorHandler: errorHandler,
	}
}

func (s *WeComService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Route("/suites/{suiteID}", func(r chi.Router) {
		r.Put("/ticket", handler.Wrap(s.setTicket,
			handler.WithBinders[handler.Context, SetTicketRequest](
				binder.Path(chi.URLParam),
				binder.JSON(),
			),
			handler.WithErrorHandler[handler.Context, SetTicketRequest](s.errorHandler),
		))

		r.Route("/corps/{corpID}/edition-changelogs", func(r chi.Router) {
			r.Post("/", handler.Wrap(s.createChangelog,
				handler.WithBinders[handler.Context, CreateChangelogRequest](
					binder.Path(chi.URLParam),
					binder.JSON(), // body is optional
				),
				handler.WithErrorHandler[handler.Context, CreateChangelogRequest](s.errorHandler),
			))
			r.Get("/latest", handler.Wrap(s.latestChangelog,
				handler.WithBinders[handler.Context, ChangelogRequest](binder.Path(chi.URLParam)),
				handler.WithErrorHandler[handler.Context, ChangelogRequest](s.errorHandler),
			))
		})
	})

	return r
}

// CreateChangelogRequest records an edition change. Agent, when present, is
// stored as-is; otherwise the edition is fetched from WeCom unless
// FetchEditionInfo is explicitly false.
type CreateChangelogRequest struct {
	SuiteID          string       `path:"suiteID" json:"-"`
	CorpID           string       `path:"corpID" json:"-"`
	FetchEditionInfo *bool        `json:"fetch_edition_info,omitempty"`
	Agent            *wecom.Agent `json:"agent,omitempty"`
}

func (s *WeComService) createChangelog(ctx handler.Context, req CreateChangelogRequest) handler.Response {
	var (
		entry *editionlog.Changelog
		err   error
	)
	switch {
	case req.Agent != nil:
		entry, err = s.changelogs.CreateChangelogFromAgent(ctx, req.SuiteID, req.CorpID, req.Agent)
	case req.FetchEditionInfo != nil:
		entry, err = s.changelogs.CreateChangelogWithFetch(ctx, req.SuiteID, req.CorpID, *req.FetchEditionInfo)
	default:
		entry, err = s.changelogs.CreateChangelog(ctx, req.SuiteID, req.CorpID)
	}
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Created(entry)
}

type ChangelogRequest struct {
	SuiteID string `path:"suiteID"`
	CorpID  string `path:"corpID"`
}

func (s *WeComService) latestChangelog(ctx handler.Context, req ChangelogRequest) handler.Response {
	entry, err := s.changelogs.LastChangelog(ctx, req.SuiteID, req.CorpID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(entry)
}

type SetTicketRequest struct {
	SuiteID string `path:"suiteID" json:"-"`
	Ticket  string `json:"ticket"`
}

func (s *WeComService) setTicket(ctx handler.Context, req SetTicketRequest) handler.Response {
	if err := s.tickets.SetSuiteTicket(ctx, req.SuiteID, req.Ticket); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}
