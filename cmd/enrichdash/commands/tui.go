package commands

import (
	"github.com/spf13/cobra"

	"enrichment-dash/internal/metrics"
	"enrichment-dash/internal/plot"
	"enrichment-dash/internal/ui"
)

func (c *CLI) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd)
		},
	}
}

func (c *CLI) runTUI(cmd *cobra.Command) error {
	if err := c.setup(cmd, true); err != nil {
		return err
	}
	xs, err := plot.ParseScale(c.cfg.XScale)
	if err != nil {
		return err
	}
	ys, err := plot.ParseScale(c.cfg.YScale)
	if err != nil {
		return err
	}
	ds, err := c.dataset()
	if err != nil {
		return err
	}
	m := ui.New(ds, ui.Options{
		PageSize: c.cfg.PageSize,
		XScale:   xs,
		YScale:   ys,
		Recorder: metrics.NewRecorder(),
	})
	return c.runProgram(cmd.Context(), m)
}
