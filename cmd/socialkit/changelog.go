package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhangzhonghe/apitable/svc/editionlog"
)

func newChangelogCmd() *cobra.Command {
	var suiteID, corpID string

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Record or inspect edition changelogs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root := cmd.Root(); root.PersistentPreRunE != nil {
				if err := root.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			if suiteID == "" {
				return errors.New("--suite is required")
			}
			if corpID == "" {
				return errors.New("--corp is required")
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&suiteID, "suite", "", "WeCom suite ID")
	cmd.PersistentFlags().StringVar(&corpID, "corp", "", "paid corp ID")

	var noFetch bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Record the corp's current edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			entry, err := a.changelogs.CreateChangelogWithFetch(ctx, suiteID, corpID, !noFetch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	create.Flags().BoolVar(&noFetch, "no-fetch", false, "store the entry without asking WeCom for edition info")

	latest := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent changelog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			return printLatest(ctx, cmd.OutOrStdout(), a.changelogs, suiteID, corpID)
		},
	}

	cmd.AddCommand(create, latest)
	return cmd
}

func printLatest(ctx context.Context, w io.Writer, changelogs editionlog.Service, suiteID, corpID string) error {
	entry, err := changelogs.LastChangelog(ctx, suiteID, corpID)
	if errors.Is(err, editionlog.ErrChangelogNotFound) {
		fmt.Fprintln(w, "no changelog recorded")
		return nil
	}
	if err != nil {
		return err
	}
	return printJSON(w, entry)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
