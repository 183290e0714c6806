package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"enrichment-dash/internal/infra/logx"
	"enrichment-dash/internal/metrics"
	"enrichment-dash/internal/web"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var (
		addr string
		rps  float64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filtered dataset and chart over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.setup(cmd, false); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			if cmd.Flags().Changed("rps") {
				c.cfg.RPS = rps
			}
			ds, err := c.dataset()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			prom, err := metrics.NewPrometheus(reg)
			if err != nil {
				return err
			}
			rec := metrics.NewRecorder()
			h := web.NewHandler(ds, metrics.Multi{prom, rec})

			srv := &web.Server{
				Addr:    c.cfg.Addr,
				Handler: web.Routes(h, reg, web.NewClientLimiter(c.cfg.RPS, 0)),
			}
			err = srv.Run(cmd.Context())
			s := rec.Snapshot()
			logx.Log(logx.LevelInfo, "server stopped", logx.Fields{
				"filter_calls": s.TotalCalls,
				"empty":        s.EmptyResults,
				"mean_latency": s.MeanLatency().String(),
			})
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8050)")
	cmd.Flags().Float64Var(&rps, "rps", 0, "Requests per second per client; 0 disables limiting")
	return cmd
}
