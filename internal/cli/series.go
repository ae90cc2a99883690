package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/series"
)

type seriesOpts struct {
	timeframe string
	value     float64
	bands     float64
	asJSON    bool
}

// seriesRow is one day in the JSON output.
type seriesRow struct {
	Date    string   `json:"date"`
	Value   int64    `json:"value"`
	Average *float64 `json:"average,omitempty"`
	Upper   *float64 `json:"upper,omitempty"`
	Lower   *float64 `json:"lower,omitempty"`
}

func (c *CLI) seriesCommand() *cobra.Command {
	var opts seriesOpts

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the synthetic market series behind the terrain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			rows, tf, err := buildSeries(cfg, &opts, time.Now)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if opts.asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printSeries(w, cfg, tf, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.timeframe, "timeframe", "", "timeframe: 1w, 1m, 3m, 1y (default from config)")
	cmd.Flags().Float64Var(&opts.value, "value", 0, "current token value (default from config)")
	cmd.Flags().Float64Var(&opts.bands, "bands", 2, "Bollinger band width in standard deviations (0 disables)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func buildSeries(cfg *config.Config, opts *seriesOpts, now func() time.Time) ([]seriesRow, series.Timeframe, error) {
	tf := cfg.Terrain.Timeframe
	if opts.timeframe != "" {
		var err error
		if tf, err = series.ParseTimeframe(opts.timeframe); err != nil {
			return nil, "", err
		}
	}
	value := orDefault(opts.value, cfg.Terrain.TokenValue)

	genOpts := []series.Option{series.WithNow(now)}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, series.WithSeed(cfg.Seed))
	}
	points, err := series.NewGenerator(genOpts...).Generate(tf.Params(value))
	if err != nil {
		return nil, "", err
	}

	rows := make([]seriesRow, len(points))
	for i, p := range points {
		rows[i] = seriesRow{Date: p.Label(), Value: p.Value}
	}
	if period := cfg.Terrain.MovingAverage; period >= 2 {
		avgs, err := series.MovingAverage(points, period)
		if err != nil {
			return nil, "", err
		}
		for _, a := range avgs {
			v := a.Value
			rows[a.Index].Average = &v
		}
		if opts.bands > 0 {
			env, err := series.Bands(points, period, opts.bands)
			if err != nil {
				return nil, "", err
			}
			for _, e := range env {
				up, lo := e.Upper, e.Lower
				rows[e.Index].Upper, rows[e.Index].Lower = &up, &lo
			}
		}
	}
	return rows, tf, nil
}

func printSeries(w io.Writer, cfg *config.Config, tf series.Timeframe, rows []seriesRow) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s token value, %s", cfg.Horse, tf.Phrase())))

	opt := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *v)
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.Date, fmt.Sprint(r.Value), opt(r.Average), opt(r.Lower), opt(r.Upper)}
	}
	fmt.Fprintln(w, newTable([]string{"Date", "Value", "SMA", "Lower", "Upper"}, table, len(rows)-1).Render())

	first, last := rows[0].Value, rows[len(rows)-1].Value
	change := float64(last-first) / float64(first) * 100
	style := styleUp
	if change < 0 {
		style = styleDown
	}
	printKeyValue(w, "Change", style.Render(fmt.Sprintf("%+.1f%%", change)))
}
