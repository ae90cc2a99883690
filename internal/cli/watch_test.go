package cli

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/live"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget/wheel"
)

func newTestWatch(t *testing.T, start string) *watchModel {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 5
	m, err := newWatchModel(cfg, start, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newWatchModel: %v", err)
	}
	t.Cleanup(m.unmount)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchFramesAdvance(t *testing.T) {
	m := newTestWatch(t, "constellation")
	for range 3 {
		_, cmd := m.Update(frameMsg(time.Now()))
		if cmd == nil {
			t.Fatal("a frame should schedule the next tick")
		}
	}
	if m.last.Number != 3 {
		t.Errorf("last frame = %d, want 3", m.last.Number)
	}
	if !strings.Contains(m.View(), "Secretariat") {
		t.Error("view should list the star labels")
	}
}

func TestWatchSpinLands(t *testing.T) {
	m := newTestWatch(t, "wheel")
	m.Update(frameMsg(time.Now()))
	m.Update(key(" "))

	wh := m.w.(*wheel.Wheel)
	if !wh.Spinning() {
		t.Fatal("space should spin the wheel")
	}
	for i := 0; i < 400 && wh.Spinning(); i++ {
		m.Update(frameMsg(time.Now()))
	}
	if m.landed == nil {
		t.Fatal("spin never landed")
	}
	if !strings.Contains(m.View(), "landed on "+m.landed.Entity.Label) {
		t.Error("view should report the landed outcome")
	}
}

func TestWatchSwitchesWidgets(t *testing.T) {
	m := newTestWatch(t, "wheel")
	m.Update(key("tab"))
	if got := m.w.Name(); got != "terrain" {
		t.Fatalf("tab switched to %s, want terrain", got)
	}

	m.Update(key("t"))
	if m.timeframe != series.Quarter {
		t.Errorf("timeframe = %s, want the one after the default", m.timeframe)
	}

	m.switchTo(len(m.names) - 1)
	m.Update(key("m"))
	if !m.heatmap {
		t.Error("m should toggle the pedigree heatmap")
	}
	m.Update(key("tab"))
	if got := m.w.Name(); got != "wheel" {
		t.Errorf("tab wraps to %s, want wheel", got)
	}
}

func TestWatchLiveMessages(t *testing.T) {
	m := newTestWatch(t, "helix")
	m.Update(countdownMsg{})
	change := 4.2
	m.Update(pulseMsg(live.Item{ID: "x", Kind: live.KindMarket, Title: "Fresh Listing", Value: "500 $TABLE", Change: &change, Time: "Just now"}))

	view := m.View()
	if !strings.Contains(view, "23:59:58") {
		t.Error("countdown should tick once")
	}
	if !strings.Contains(view, "Fresh Listing") || !strings.Contains(view, "+4.2%") {
		t.Error("pulse item should be shown first")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestWatchRejectsUnknownWidget(t *testing.T) {
	if _, err := newWatchModel(config.Default(), "radar", log.New(io.Discard)); err == nil {
		t.Error("unknown widget should fail")
	}
}
