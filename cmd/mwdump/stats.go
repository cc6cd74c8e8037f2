package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jacoelho/mwdump"
)

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <dump>",
		Short: "Count pages, revisions, contributors and comments in a dump",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := newDumpStats()
			err := mwdump.ParseFileWithOptions(args[0], a.untilDone(cmd.Context(), func(p *mwdump.Page) error {
				stats.add(p)
				return nil
			}), a.parseOptions())
			if err != nil {
				return err
			}
			stats.render(a.stdout)
			return nil
		},
	}
}

// dumpStats accumulates counts over the pages of a dump.
type dumpStats struct {
	namespaces   map[int]int
	pages        int
	revisions    int
	redirects    int
	restricted   int
	minor        int
	textBytes    int64
	users        int
	anonymous    int
	hiddenUsers  int
	visible      int
	hidden       int
	absent       int
	withOrigin   int
	maxRevisions int
}

func newDumpStats() *dumpStats {
	return &dumpStats{namespaces: make(map[int]int)}
}

func (s *dumpStats) add(p *mwdump.Page) {
	s.pages++
	s.namespaces[p.Namespace]++
	if p.IsRedirect() {
		s.redirects++
	}
	if p.Restrictions != nil {
		s.restricted++
	}
	s.revisions += len(p.Revisions)
	s.maxRevisions = max(s.maxRevisions, len(p.Revisions))
	for i := range p.Revisions {
		rev := &p.Revisions[i]
		s.textBytes += int64(len(rev.Text))
		if rev.Minor {
			s.minor++
		}
		if rev.Origin != nil {
			s.withOrigin++
		}
		switch rev.Contributor.(type) {
		case mwdump.UserContributor:
			s.users++
		case mwdump.IPContributor:
			s.anonymous++
		case mwdump.DeletedContributor:
			s.hiddenUsers++
		}
		switch c := rev.Comment.(type) {
		case mwdump.VisibleComment:
			s.visible++
		case mwdump.DeletedOrAbsentComment:
			if c.Deleted {
				s.hidden++
			} else {
				s.absent++
			}
		}
	}
}

func (s *dumpStats) render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"Metric", "Value"})

	t.AppendRows([]table.Row{
		{"pages", s.pages},
		{"redirects", s.redirects},
		{"restricted pages", s.restricted},
		{"revisions", s.revisions},
		{"most revisions on a page", s.maxRevisions},
		{"minor revisions", s.minor},
		{"revisions with origin", s.withOrigin},
		{"text bytes", s.textBytes},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"registered contributors", s.users},
		{"anonymous contributors", s.anonymous},
		{"hidden contributors", s.hiddenUsers},
		{"visible comments", s.visible},
		{"hidden comments", s.hidden},
		{"absent comments", s.absent},
	})
	t.AppendSeparator()
	for _, ns := range slices.Sorted(maps.Keys(s.namespaces)) {
		t.AppendRow(table.Row{fmt.Sprintf("namespace %d", ns), s.namespaces[ns]})
	}
	t.Render()
}
