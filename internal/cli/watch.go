package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/clock"
	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/live"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/pipeline"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget"
	"github.com/matzehuels/paddock/pkg/widget/fluid"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
	"github.com/matzehuels/paddock/pkg/widget/terrain"
	"github.com/matzehuels/paddock/pkg/widget/wheel"
)

// Messages delivered to the watch model.
type (
	frameMsg     time.Time
	countdownMsg struct{}
	pulseMsg     live.Item
)

// pulseRows is the number of market pulse items shown.
const pulseRows = 5

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(colorTeal).Bold(true).Padding(0, 1)
)

func (c *CLI) watchCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live terminal dashboard",
		Long:  "Watch mounts a widget on a 60 fps frame clock in the terminal, next to the auction countdown and the market pulse ticker.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cfg, start)
		},
	}

	cmd.Flags().StringVarP(&start, "widget", "w", pipeline.DefaultWidget, "widget to show first")
	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, start string) error {
	logger := loggerFromContext(ctx)
	m, err := newWatchModel(cfg, start, logger)
	if err != nil {
		return err
	}
	defer m.unmount()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	sched := live.NewScheduler(live.WithLogger(logger))
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	if err := sched.Every(time.Duration(cfg.Live.CountdownTick)*time.Second, "countdown", func(context.Context) {
		p.Send(countdownMsg{})
	}); err != nil {
		return err
	}
	if err := sched.Every(time.Duration(cfg.Live.PulseSeconds)*time.Second, "pulse", func(context.Context) {
		p.Send(pulseMsg(live.Generate(rng)))
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// watchModel is the bubbletea model of the live dashboard. The widget runs on
// a manual frame scheduler advanced by tea ticks, so every frame is drawn on
// the program's goroutine.
type watchModel struct {
	cfg    *config.Config
	logger *log.Logger

	names  []string
	active int
	w      widget.Widget
	sched  *clock.Manual
	host   *widget.Host
	last   widget.Frame

	timeframe series.Timeframe
	heatmap   bool
	landed    *outcome.Outcome

	countdown live.Countdown
	feed      *live.Feed
	err       error
}

func newWatchModel(cfg *config.Config, start string, logger *log.Logger) (*watchModel, error) {
	if err := pipeline.ValidateWidget(start); err != nil {
		return nil, err
	}
	m := &watchModel{
		cfg:       cfg,
		logger:    logger,
		names:     pipeline.Widgets,
		active:    slices.Index(pipeline.Widgets, start),
		timeframe: cfg.Terrain.Timeframe,
		heatmap:   cfg.Pedigree.Heatmap,
		countdown: cfg.Live.Countdown,
		feed:      live.DefaultFeed(),
	}
	if err := m.mount(); err != nil {
		return nil, err
	}
	return m, nil
}

// mount builds the active widget and starts its frame clock.
func (m *watchModel) mount() error {
	m.unmount()
	name := m.names[m.active]
	w, err := pipeline.Build(m.cfg, name, pipeline.BuildOptions{
		Timeframe: m.timeframe,
		Heatmap:   m.heatmap,
		Logger:    m.logger,
		OnSpin: func(o outcome.Outcome) {
			m.landed = &o
		},
	})
	if err != nil {
		return err
	}
	m.w = w
	m.sched = clock.NewManual(clock.DefaultInterval)
	m.host = widget.NewHost(w, m.sched, widget.FixedSurface(m.cfg.Surface),
		func(f widget.Frame) error {
			m.last = f
			return nil
		},
		widget.WithLogger(m.logger),
		widget.WithOnError(func(err error) { m.err = err }),
	)
	m.landed = nil
	return m.host.Mount()
}

func (m *watchModel) unmount() {
	if m.host != nil {
		m.host.Unmount()
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(clock.DefaultInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init implements tea.Model.
func (m *watchModel) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.host.Mounted() {
			m.sched.Advance(1)
		}
		return m, frameTick()
	case countdownMsg:
		m.countdown = m.countdown.Tick()
	case pulseMsg:
		m.feed.Push(live.Item(msg))
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *watchModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "tab", "right", "l":
		m.switchTo((m.active + 1) % len(m.names))
	case "shift+tab", "left", "h":
		m.switchTo((m.active + len(m.names) - 1) % len(m.names))
	case " ", "s":
		if wh, ok := m.w.(*wheel.Wheel); ok {
			wh.Spin()
		}
		if f, ok := m.w.(*fluid.Fluid); ok {
			f.TogglePlay()
		}
	case "m":
		if pd, ok := m.w.(*pedigree.Pedigree); ok {
			m.heatmap = pd.ToggleHeatmap()
		}
	case "t":
		if t, ok := m.w.(*terrain.Terrain); ok {
			i := slices.Index(series.Timeframes, m.timeframe)
			m.timeframe = series.Timeframes[(i+1)%len(series.Timeframes)]
			if err := t.SetTimeframe(m.timeframe); err != nil {
				m.err = err
			}
		}
	case "r":
		if r, ok := m.w.(widget.Resetter); ok {
			r.Reset()
		}
	}
	return nil
}

func (m *watchModel) switchTo(i int) {
	m.active = i
	if err := m.mount(); err != nil {
		m.err = err
	}
}

// View implements tea.Model.
func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.cfg.Horse))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("auction closes in "))
	b.WriteString(StyleNumber.Render(m.countdown.String()))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.names))
	for i, name := range m.names {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(48).Render(m.widgetPanel()),
		panelStyle.Width(44).Render(m.pulsePanel()),
	))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString(StyleDim.Render("tab next  space spin/play  m heatmap  t timeframe  r reset  q quit"))
	return b.String()
}

func (m *watchModel) widgetPanel() string {
	var b strings.Builder
	stats := m.host.Stats()
	fmt.Fprintf(&b, "%s frame %d  %s\n",
		StyleValue.Render(m.names[m.active]),
		m.last.Number,
		StyleDim.Render(fmt.Sprintf("%d cmds", len(m.last.Commands))))
	fmt.Fprintf(&b, "%s\n", StyleDim.Render(fmt.Sprintf("%d rects · %d paths · %d circles · %d skipped",
		m.last.Commands.Count(draw.KindRect),
		m.last.Commands.Count(draw.KindPath),
		m.last.Commands.Count(draw.KindCircle),
		stats.Skipped)))
	b.WriteString("\n")

	texts := m.last.Commands.Texts()
	for _, t := range texts[:min(len(texts), 12)] {
		b.WriteString(t + "\n")
	}
	if len(texts) > 12 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("… %d more labels", len(texts)-12)) + "\n")
	}

	if wh, ok := m.w.(*wheel.Wheel); ok {
		switch {
		case wh.Spinning():
			b.WriteString("\n" + StyleWarning.Render("spinning…"))
		case m.landed != nil:
			b.WriteString("\n" + StyleSuccess.Render(fmt.Sprintf("landed on %s (%.0f%%)", m.landed.Entity.Label, m.landed.Probability*100)))
		}
	}
	return b.String()
}

func (m *watchModel) pulsePanel() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Market pulse") + "\n")
	items := m.feed.Items()
	for _, it := range items[:min(len(items), pulseRows)] {
		change := live.FormatChange(it.Change)
		if it.Change != nil {
			if it.Up() {
				change = styleUp.Render(change)
			} else {
				change = styleDown.Render(change)
			}
		}
		title := it.Title
		if it.Kind == live.KindGovernance {
			title = lipgloss.NewStyle().Foreground(colorPurple).Render(title)
		}
		fmt.Fprintf(&b, "%s\n  %s %s %s\n", title, StyleValue.Render(it.Value), change, StyleDim.Render(it.Time))
	}
	return b.String()
}
