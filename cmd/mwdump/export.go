package main

import (
	"bufio"
	"errors"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/mwdump"
)

func (a *app) exportCommand() *cobra.Command {
	var (
		limit  int
		noText bool
	)
	cmd := &cobra.Command{
		Use:   "export <dump>",
		Short: "Write pages as JSON lines",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return &usageError{err: errors.New("--limit must be >= 0")}
			}
			w := bufio.NewWriter(a.stdout)
			enc := json.NewEncoder(w)
			written := 0
			err := mwdump.ParseFileWithOptions(args[0], a.untilDone(cmd.Context(), func(p *mwdump.Page) error {
				if err := enc.Encode(newPageRecord(p, !noText)); err != nil {
					return err
				}
				written++
				if limit > 0 && written >= limit {
					return mwdump.ErrStop
				}
				return nil
			}), a.parseOptions())
			if flushErr := w.Flush(); flushErr != nil {
				err = errors.Join(err, flushErr)
			}
			a.logger.Debug("export finished", zap.Int("pages", written))
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many pages (0 means all)")
	cmd.Flags().BoolVar(&noText, "no-text", false, "omit revision text")
	return cmd
}
