package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/outcome"
)

// significance is the p-value below which a simulation is reported as
// inconsistent with the configured odds.
const significance = 0.01

type spinOpts struct {
	simulate int
}

func (c *CLI) spinCommand() *cobra.Command {
	var opts spinOpts

	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Spin the breeding outcome wheel",
		Long: `Spin draws one outcome from the configured wheel odds and reports where the
pointer comes to rest. With --simulate N it draws N outcomes instead and runs
a chi-square goodness-of-fit test of the observed counts against the odds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if opts.simulate > 0 {
				return runSimulate(cmd.Context(), cmd.OutOrStdout(), cfg, opts.simulate)
			}
			return runSpin(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().IntVar(&opts.simulate, "simulate", 0, "simulate N spins and test the odds")
	return cmd
}

func newResolver(cfg *config.Config) (*outcome.Resolver, error) {
	opts := []outcome.Option{outcome.WithTurns(cfg.Wheel.MinTurns, cfg.Wheel.MaxTurns)}
	if cfg.Seed != 0 {
		opts = append(opts, outcome.WithSeed(cfg.Seed))
	}
	return outcome.NewResolver(cfg.Wheel.Outcomes, opts...)
}

func runSpin(ctx context.Context, w io.Writer, cfg *config.Config) error {
	res, err := newResolver(cfg)
	if err != nil {
		return err
	}
	out := res.Resolve(0)
	loggerFromContext(ctx).Debug("resolved spin", "index", out.Index, "turns", out.Turns, "target", out.Target)

	printSuccess(w, "%s landed on %s", cfg.Horse, StyleTitle.Render(out.Entity.Label))
	printKeyValue(w, "Probability", fmt.Sprintf("%.0f%%", out.Probability*100))
	printKeyValue(w, "Turns", fmt.Sprint(out.Turns))
	printKeyValue(w, "Target", fmt.Sprintf("%.3f rad", out.Target))

	rows := make([][]string, len(cfg.Wheel.Outcomes))
	for i, e := range cfg.Wheel.Outcomes {
		rows[i] = []string{e.Label, fmt.Sprintf("%5.1f%%", e.Weight*100), bar(e.Weight, 20)}
	}
	fmt.Fprintln(w, newTable([]string{"Outcome", "Odds", ""}, rows, out.Index).Render())
	return nil
}

func runSimulate(ctx context.Context, w io.Writer, cfg *config.Config, n int) error {
	res, err := newResolver(cfg)
	if err != nil {
		return err
	}
	prog := newProgress(loggerFromContext(ctx))
	counts := res.Simulate(n)
	fit, err := outcome.GoodnessOfFit(counts, cfg.Wheel.Outcomes.Weights())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Simulated %d spins", n))

	rows := make([][]string, len(counts))
	for i, e := range cfg.Wheel.Outcomes {
		observed := float64(counts[i]) / float64(n)
		rows[i] = []string{
			e.Label,
			fmt.Sprintf("%5.1f%%", e.Weight*100),
			fmt.Sprintf("%5.1f%%", observed*100),
			fmt.Sprint(counts[i]),
			bar(observed, 20),
		}
	}
	fmt.Fprintln(w, newTable([]string{"Outcome", "Odds", "Observed", "Count", ""}, rows, -1).Render())
	printKeyValue(w, "Chi-square", fmt.Sprintf("%.3f (%d dof)", fit.Statistic, fit.DoF))
	printKeyValue(w, "p-value", fmt.Sprintf("%.4f", fit.PValue))

	if fit.PValue < significance {
		printError(w, "observed frequencies do not match the odds (p < %g)", significance)
		return errors.New(errors.ErrCodeInternal, "simulation failed the goodness-of-fit test")
	}
	printSuccess(w, "observed frequencies match the odds")
	return nil
}
