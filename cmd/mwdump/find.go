package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/mwdump"
	mwerrors "github.com/jacoelho/mwdump/errors"
	"github.com/jacoelho/mwdump/internal/source"
)

func (a *app) findCommand() *cobra.Command {
	var noText bool
	cmd := &cobra.Command{
		Use:   "find <dump> <title>",
		Short: "Print one page as JSON",
		Long: "find loads the decompressed dump into memory and locates the page by a\n" +
			"literal search for its title, decoding only that page.",
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			path, title := args[0], args[1]
			data, err := a.readDump(path)
			if err != nil {
				return err
			}
			page, err := mwdump.FindPageWithOptions(data, title, a.parseOptions())
			if err != nil {
				if errors.Is(err, mwdump.ErrPageNotFound) {
					return fmt.Errorf("page %q not found in %s", title, path)
				}
				return err
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(newPageRecord(page, !noText))
		},
	}
	cmd.Flags().BoolVar(&noText, "no-text", false, "omit revision text")
	return cmd
}

// readDump returns the decompressed content of path.
func (a *app) readDump(path string) (data []byte, err error) {
	rc, err := source.Open(path, source.Options{ExtendedCodecs: a.v.GetBool(keyExtendedCodecs)})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = &mwerrors.IOError{Action: "close", Path: path, Err: closeErr}
		}
	}()
	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, &mwerrors.IOError{Action: "read", Path: path, Err: err}
	}
	a.logger.Debug("dump loaded", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}
