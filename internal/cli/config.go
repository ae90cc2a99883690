package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/config"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or check the dashboard configuration",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long:  "Show prints the configuration after the file, .env and PADDOCK_* overrides are applied. With --defaults it prints the built-in demo dashboard, a good starting point for a new file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if !defaults {
				var err error
				if cfg, err = c.loadConfig(cmd.Context()); err != nil {
					return err
				}
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults")
	return cmd
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				printError(w, "%v", err)
				return err
			}
			source := c.configPath
			if source == "" {
				source = "built-in defaults"
			}
			printSuccess(w, "%s is valid", source)
			printKeyValue(w, "Horse", cfg.Horse)
			printKeyValue(w, "Surface", fmt.Sprintf("%gx%g @%gx", cfg.Surface.Width, cfg.Surface.Height, cfg.Surface.DPR))
			printKeyValue(w, "Outcomes", fmt.Sprint(len(cfg.Wheel.Outcomes)))
			printKeyValue(w, "Owners", fmt.Sprint(len(cfg.Ownership.Owners)))
			printKeyValue(w, "Stars", fmt.Sprint(len(cfg.Constellation.Stars)))
			printKeyValue(w, "Generations", fmt.Sprint(cfg.Pedigree.Root.Depth()))
			if cfg.Seed != 0 {
				printKeyValue(w, "Seed", fmt.Sprint(cfg.Seed))
			}
			return nil
		},
	}
}
