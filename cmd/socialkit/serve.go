package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/zhangzhonghe/apitable/handler"
	"github.com/zhangzhonghe/apitable/migrations"
	"github.com/zhangzhonghe/apitable/modules/social"
	"github.com/zhangzhonghe/apitable/pkg/config"
	"github.com/zhangzhonghe/apitable/pkg/httpserver"
	"github.com/zhangzhonghe/apitable/pkg/metrics"
	"github.com/zhangzhonghe/apitable/pkg/pg"
	"github.com/zhangzhonghe/apitable/pkg/redis"
	"github.com/zhangzhonghe/apitable/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if migrate {
				if err := pg.Migrate(ctx, a.pool, a.pgCfg, migrations.FS, a.log); err != nil {
					return err
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			if err := metrics.Register(reg); err != nil {
				return err
			}

			checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(a.pool)}}
			if a.rdb != nil {
				checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(a.rdb)})
			}

			errHandler := handler.NewErrorHandler(a.log, social.MapError)

			r := chi.NewRouter()
			r.Use(requestid.Middleware)
			r.Get("/livez", httpserver.Liveness())
			r.Get("/readyz", httpserver.Readiness(a.log, 2*time.Second, checks...))
			r.Handle("/metrics", metrics.Handler(reg))
			r.Mount("/", social.Router(social.RouterOptions{
				WeCom: social.NewWeComService(a.changelogs, a.registry, errHandler),
			}))

			var httpCfg httpserver.Config
			if err := config.Load(&httpCfg); err != nil {
				return err
			}
			srv := httpserver.NewFromConfig(httpCfg,
				httpserver.WithLogger(a.log),
				httpserver.WithStopHook(func(context.Context) { a.close() }),
			)
			return srv.Run(ctx, r)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
