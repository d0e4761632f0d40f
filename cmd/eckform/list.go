package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/xelth-com/eckform/internal/form"
	"github.com/xelth-com/eckform/internal/pagination"
)

func newListCmd(a *app) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the record table",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if pageSize == 0 {
				pageSize = a.cfg.Store.PageSize
			}
			view := pagination.NewView(st, pageSize)
			if err := view.SetPageSize(pageSize); err != nil {
				return err
			}
			view.GoTo(page)

			renderPage(cmd.OutOrStdout(), view.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "records per page (default from PAGE_SIZE)")
	return cmd
}

func renderPage(out io.Writer, p pagination.Page) {
	if p.Total > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(form.Columns...).
			Rows(form.Rows(p.Items, p.Start)...)
		fmt.Fprintln(out, t.Render())
	}

	fmt.Fprintln(out, p.Summary)
	if nav := navigationLine(p.Controls); nav != "" {
		fmt.Fprintln(out, nav)
	}
}

// navigationLine prints controls as text: [3] is the current page,
// disabled controls are wrapped in parentheses
func navigationLine(controls []pagination.Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		switch {
		case c.Active:
			parts = append(parts, "["+c.Label+"]")
		case c.Disabled && c.Kind != pagination.ControlEllipsis:
			parts = append(parts, "("+c.Label+")")
		default:
			parts = append(parts, c.Label)
		}
	}
	return strings.Join(parts, " ")
}
