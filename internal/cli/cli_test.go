package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/layout"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot,", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("300, 150.5")
	if err != nil {
		t.Fatalf("parsePoint: %v", err)
	}
	if *p != (layout.Point{X: 300, Y: 150.5}) {
		t.Errorf("parsePoint = %+v", *p)
	}
	if p, err := parsePoint(""); p != nil || err != nil {
		t.Errorf("empty point = %v, %v", p, err)
	}
	for _, bad := range []string{"300", "x,1", "1,y"} {
		if _, err := parsePoint(bad); err == nil {
			t.Errorf("parsePoint(%q) should fail", bad)
		}
	}
}

func TestOutputPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		output, widget, format string
		multiple               bool
		want                   string
	}{
		{"", "wheel", "svg", false, "wheel.svg"},
		{"spin.svg", "wheel", "svg", false, "spin.svg"},
		{"out" + sep, "helix", "png", true, filepath.Join("out", "helix.png")},
		{"snap.svg", "wheel", "json", true, "snap_wheel.json"},
		{"snap", "pedigree", "graphviz", true, "snap_pedigree.graphviz.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.widget, tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q", tt.output, tt.widget, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestRenderOptsDropForeignFlags(t *testing.T) {
	o := renderOpts{formats: "svg,dot", spinAt: 1, sel: "1-0"}

	opts, err := o.toOptions("terrain", true)
	if err != nil {
		t.Fatal(err)
	}
	if opts.SpinAt != 0 || opts.Select != "" || len(opts.Formats) != 1 {
		t.Errorf("terrain options kept foreign flags: %+v", opts)
	}

	opts, _ = o.toOptions("pedigree", true)
	if opts.Select != "1-0" || len(opts.Formats) != 2 {
		t.Errorf("pedigree options lost flags: %+v", opts)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.msgpack", "two.msgpack"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte{0x80}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearCache(dir)
	if err != nil || n != 2 {
		t.Fatalf("clearCache = %d, %v; want 2", n, err)
	}
	if _, err := os.Stat(shard); !os.IsNotExist(err) {
		t.Error("empty shard directory should be removed")
	}
	if n, _ := clearCache(filepath.Join(dir, "missing")); n != 0 {
		t.Errorf("missing dir cleared %d", n)
	}
}

func TestRenderCommandWritesFiles(t *testing.T) {
	out, err := execute(t, "render", "pedigree", "--seed", "7", "-f", "svg,dot", "--select", "1-0", "-o", "snap")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "pedigree") {
		t.Errorf("render output %q should name the widget", out)
	}
	for _, path := range []string{"snap_pedigree.svg", "snap_pedigree.dot"} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestRenderCommandUpperCaseTimeframe(t *testing.T) {
	if _, err := execute(t, "render", "terrain", "--timeframe", "1W", "-f", "json", "--no-cache"); err != nil {
		t.Fatalf("render --timeframe 1W: %v", err)
	}
	if _, err := os.Stat("terrain.json"); err != nil {
		t.Errorf("terrain.json not written: %v", err)
	}
}

func TestRenderCommandRejectsUnknownWidget(t *testing.T) {
	if _, err := execute(t, "render", "radar", "--no-cache"); err == nil {
		t.Error("unknown widget should fail")
	}
}

func TestSpinCommand(t *testing.T) {
	out, err := execute(t, "spin", "--seed", "3")
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if !strings.Contains(out, "landed on") {
		t.Errorf("spin output %q", out)
	}

	out, err = execute(t, "spin", "--seed", "3", "--simulate", "20000")
	if err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "match the odds") {
		t.Errorf("simulate output %q", out)
	}
}

func TestSeriesJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 11
	now := func() time.Time { return time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC) }

	rows, tf, err := buildSeries(cfg, &seriesOpts{timeframe: "1w", bands: 2}, now)
	if err != nil {
		t.Fatal(err)
	}
	if tf != "1w" || len(rows) != 8 {
		t.Fatalf("got %d rows for %s, want 8 for 1w", len(rows), tf)
	}
	if rows[len(rows)-1].Date != "1/31/2026" {
		t.Errorf("last date = %s", rows[len(rows)-1].Date)
	}
	if rows[5].Average != nil || rows[6].Average == nil {
		t.Error("the 7-day average starts on the seventh point")
	}
	if u, l := rows[7].Upper, rows[7].Lower; u == nil || l == nil || *u < *l {
		t.Error("bands should bracket the average")
	}

	out, err := execute(t, "series", "--seed", "11", "--timeframe", "1m", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var decoded []seriesRow
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("series --json: %v", err)
	}
	if len(decoded) != 31 {
		t.Errorf("1m series has %d rows, want 31", len(decoded))
	}
}

func TestPedigreeCommand(t *testing.T) {
	out, err := execute(t, "pedigree", "--depth", "2")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Secretariat", "Bold Ruler", "Somethingroyal", "3 ancestors"} {
		if !strings.Contains(out, name) {
			t.Errorf("pedigree output misses %q:\n%s", name, out)
		}
	}
	if strings.Contains(out, "Nasrullah") {
		t.Error("depth 2 should stop at the parents")
	}

	out, err = execute(t, "pedigree", "--dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph Pedigree {") {
		t.Errorf("pedigree --dot = %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	out, err := execute(t, "config", "show", "--defaults")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := config.Parse(strings.NewReader(out)); err != nil {
		t.Errorf("config show output does not parse: %v", err)
	}

	out, err = execute(t, "config", "check")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "built-in defaults is valid") {
		t.Errorf("config check output %q", out)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[helix]\nscore = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "config", "check"); err == nil {
		t.Error("an invalid file should fail the check")
	}
}
