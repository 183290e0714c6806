package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/infra/logx"
	"enrichment-dash/internal/metrics"
)

// ErrInvalidFlag is returned for inconsistent filter flags.
var ErrInvalidFlag = zerr.New("invalid flag")

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

type filterFlags struct {
	xmin, xmax, ymin, ymax float64
	selection              []string
	query                  string
	where                  []string
	format                 string
}

func (c *CLI) newFilterCmd() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the genes visible for a view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.setup(cmd, false); err != nil {
				return err
			}
			view, err := f.view(cmd)
			if err != nil {
				return err
			}
			where, err := f.columns()
			if err != nil {
				return err
			}
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			rec := metrics.NewRecorder()
			rows := gene.Collect(ds, metrics.Visible(rec, metrics.OriginCLI, ds, view))
			rows = gene.ApplyColumns(rows, where)
			logx.Debugf("filter path=%s visible=%d/%d in %s", gene.PathOf(view), len(rows), ds.Len(), rec.Snapshot().MeanLatency())
			return c.printRows(f.format, ds, rows)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&f.xmin, "xmin", 0, "Lower bound of Enrichment_Sample1")
	fl.Float64Var(&f.xmax, "xmax", 0, "Upper bound of Enrichment_Sample1")
	fl.Float64Var(&f.ymin, "ymin", 0, "Lower bound of Enrichment_Sample2")
	fl.Float64Var(&f.ymax, "ymax", 0, "Upper bound of Enrichment_Sample2")
	fl.StringSliceVar(&f.selection, "select", nil, "Selected gene ids; overrides the ranges")
	fl.StringVar(&f.query, "query", "", "Case-insensitive substring of the gene id")
	fl.StringArrayVar(&f.where, "where", nil, "Column filter applied to the result, e.g. 'Q_Value < 0.05' (repeatable)")
	fl.StringVar(&f.format, "format", formatTable, "Output format (table, csv, json)")
	return cmd
}

func (f filterFlags) view(cmd *cobra.Command) (gene.ViewState, error) {
	v := gene.ViewState{Selection: f.selection, Query: f.query}
	var err error
	if v.XRange, err = flagRange(cmd, "xmin", "xmax", f.xmin, f.xmax); err != nil {
		return v, err
	}
	if v.YRange, err = flagRange(cmd, "ymin", "ymax", f.ymin, f.ymax); err != nil {
		return v, err
	}
	return v, nil
}

func (f filterFlags) columns() ([]gene.ColumnFilter, error) {
	out := make([]gene.ColumnFilter, 0, len(f.where))
	for _, expr := range f.where {
		cf, err := gene.ParseColumnFilter(expr)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrInvalidFlag.Error()), "flag", "--where")
		}
		out = append(out, cf)
	}
	return out, nil
}

func flagRange(cmd *cobra.Command, minFlag, maxFlag string, lo, hi float64) (*gene.Range, error) {
	hasMin, hasMax := cmd.Flags().Changed(minFlag), cmd.Flags().Changed(maxFlag)
	switch {
	case !hasMin && !hasMax:
		return nil, nil
	case hasMin != hasMax:
		return nil, zerr.With(ErrInvalidFlag, "requires", "--"+minFlag+" and --"+maxFlag)
	}
	return &gene.Range{Min: lo, Max: hi}, nil
}

func (c *CLI) printRows(format string, ds *gene.Dataset, rows []gene.Record) error {
	switch format {
	case formatCSV:
		return gene.WriteCSV(c.stdout, rows)
	case formatJSON:
		if rows == nil {
			rows = []gene.Record{}
		}
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"genes": rows, "total": ds.Len(), "visible": len(rows)})
	case formatTable:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(gene.ColGene, gene.ColX, gene.ColY, gene.ColQ)
		for _, r := range rows {
			t.Row(r.ID, formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Q))
		}
		_, err := fmt.Fprintf(c.stdout, "%s\n%d of %d genes\n", t.Render(), len(rows), ds.Len())
		return err
	default:
		return zerr.With(ErrInvalidFlag, "format", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
