package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"enrichment-dash/internal/config"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.setup(cmd, false); err != nil {
				return err
			}
			if !save {
				_, err := fmt.Fprint(c.stdout, config.Encode(c.cfg))
				return err
			}
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(path, c.cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(c.stdout, "saved %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the effective configuration to the config file")
	return cmd
}
