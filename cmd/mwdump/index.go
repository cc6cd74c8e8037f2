package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/mwdump"
	"github.com/jacoelho/mwdump/internal/index"
)

func (a *app) indexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <dump>",
		Short: "Store page and revision metadata in a SQLite database",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			dsn := a.v.GetString(keyIndexDB)
			store, err := index.Open(ctx, dsn)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			err = mwdump.ParseFileWithOptions(args[0], a.untilDone(ctx, func(p *mwdump.Page) error {
				return store.InsertPage(ctx, p)
			}), a.parseOptions())
			if err != nil {
				return err
			}

			counts, err := store.Count(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("index updated",
				zap.String("db", dsn),
				zap.Int("pages", counts.Pages),
				zap.Int("revisions", counts.Revisions),
			)
			return writef(a.stdout, "%s: %d pages, %d revisions\n", dsn, counts.Pages, counts.Revisions)
		},
	}
	cmd.Flags().String("db", "mwdump.sqlite", "SQLite database file")
	a.bindFlag(keyIndexDB, cmd.Flags().Lookup("db"))
	return cmd
}
