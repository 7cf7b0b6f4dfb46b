package main

import (
	"github.com/spf13/cobra"

	"github.com/zhangzhonghe/apitable/migrations"
	"github.com/zhangzhonghe/apitable/pkg/pg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newDBApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			return pg.Migrate(ctx, a.pool, a.pgCfg, migrations.FS, a.log)
		},
	}
}
