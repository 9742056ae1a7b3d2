package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"navboard/internal/chart"
	"navboard/internal/config"
	"navboard/internal/content"
	"navboard/internal/nav"
	"navboard/internal/portfolio"
	"navboard/internal/source"
)

func newReportCmd(cfg *config.Config) *cobra.Command {
	var from, to string
	var color bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the comparison table and figures computed from the NAV CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := cfg.Range
			var err error
			if from != "" {
				if r.From, err = nav.ParseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if r.To, err = nav.ParseDate(to); err != nil {
					return err
				}
			}
			site, err := content.Load(cfg.ContentPath)
			if err != nil {
				return err
			}
			view := portfolio.NewView(source.New(cfg.NavSource, cfg.FetchTimeout),
				chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight),
				portfolio.Options{Range: r, BenchmarkFactor: cfg.BenchmarkFactor})
			defer view.Close()
			ctx := cmd.Context()
			view.Load(ctx)
			if err := view.Wait(ctx); err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), site.Comparison, view.Snapshot(), color)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "range start (YYYY-MM-DD), defaults to RANGE_FROM")
	cmd.Flags().StringVar(&to, "to", "", "range end (YYYY-MM-DD), defaults to RANGE_TO")
	cmd.Flags().BoolVar(&color, "color", true, "colorize positive and negative values")
	return cmd
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

func colorize(v string, color bool) string {
	if !color {
		return v
	}
	switch content.ValueClass(v) {
	case "negative":
		return text.Colors{text.FgRed}.Sprint(v)
	case "positive":
		return text.Colors{text.FgGreen}.Sprint(v)
	}
	return v
}

func writeReport(w io.Writer, rows []content.Strategy, snap portfolio.Snapshot, color bool) error {
	tw := newTable(w)
	hdr := make(table.Row, len(content.Columns))
	for i, c := range content.Columns {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)
	for _, s := range rows {
		cells := s.Cells()
		row := make(table.Row, len(cells))
		for i, c := range cells {
			if i == 0 {
				row[i] = c
				continue
			}
			row[i] = colorize(c, color)
		}
		tw.AppendRow(row)
	}
	tw.Render()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Computed from NAV, %s (%d points)\n", snap.Range, snap.Summary.Points)
	if snap.Summary.Points == 0 {
		fmt.Fprintln(w, "No NAV data in the selected range.")
		return nil
	}
	st := newTable(w)
	st.AppendHeader(table.Row{"METRIC", "VALUE"})
	pct := func(v float64) string { return fmt.Sprintf("%.1f%%", v) }
	st.AppendRow(table.Row{"First", fmt.Sprintf("%s  %.2f", snap.Summary.First.Date, snap.Summary.First.Value)})
	st.AppendRow(table.Row{"Last", fmt.Sprintf("%s  %.2f", snap.Summary.Last.Date, snap.Summary.Last.Value)})
	st.AppendRow(table.Row{"Since start", colorize(pct(snap.Summary.SinceStart), color)})
	for _, r := range snap.Summary.Trailing {
		v := "n/a"
		if r.OK {
			v = colorize(pct(r.Percent), color)
		}
		st.AppendRow(table.Row{r.Window, v})
	}
	st.AppendRow(table.Row{"DD", colorize(pct(snap.Summary.CurrentDrawdown), color)})
	st.AppendRow(table.Row{"MaxDD", colorize(pct(snap.Summary.MaxDrawdown), color)})
	st.Render()
	fmt.Fprintf(w, "\n%s = NAV x %.2f; a synthetic stand-in, not index data.\n", snap.BenchmarkName, snap.BenchmarkFactor)
	return nil
}
