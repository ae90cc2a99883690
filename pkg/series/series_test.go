package series

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/paddock/pkg/errors"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }

func TestGenerateMonth(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		g := NewGenerator(WithSeed(seed), WithNow(fixedNow))
		p := Params{Days: 30, CurrentValue: 450, Volatility: 0.12}

		points, err := g.Generate(p)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(points) != 31 {
			t.Fatalf("seed %d: len = %d, want 31", seed, len(points))
		}
		for i, pt := range points {
			if pt.Value <= 0 {
				t.Errorf("seed %d: point %d value %d not positive", seed, i, pt.Value)
			}
			if i > 0 && !pt.Timestamp.After(points[i-1].Timestamp) {
				t.Errorf("seed %d: timestamps not ascending at %d", seed, i)
			}
		}
		last := float64(points[len(points)-1].Value)
		if math.Abs(last-450) > 0.12*450 {
			t.Errorf("seed %d: last value %v not within ±54 of 450", seed, last)
		}
	}
}

func TestGenerateTimestamps(t *testing.T) {
	g := NewGenerator(WithSeed(1), WithNow(fixedNow))
	points, err := g.Generate(Params{Days: 7, CurrentValue: 100, Volatility: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	if got := points[len(points)-1].Timestamp; !got.Equal(fixedNow()) {
		t.Errorf("last timestamp = %v, want now", got)
	}
	if got := points[0].Label(); got != "3/8/2025" {
		t.Errorf("first label = %q, want 3/8/2025", got)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	p := Params{Days: 90, CurrentValue: 450, Volatility: 0.25}
	a, _ := NewGenerator(WithSeed(9), WithNow(fixedNow)).Generate(p)
	b, _ := NewGenerator(WithSeed(9), WithNow(fixedNow)).Generate(p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestGenerateFormula(t *testing.T) {
	// With rf fixed at 0 (u=0.5) only the trend term applies.
	g := NewGenerator(WithRand(constRand(0.5)), WithNow(fixedNow))
	points, err := g.Generate(Params{Days: 2, CurrentValue: 1000, Volatility: 0.2})
	if err != nil {
		t.Fatal(err)
	}

	v := 1000 * 0.8
	want := make([]int64, 0, 3)
	for i := 2; i >= 0; i-- {
		tf := float64(2-i) / 2 * 0.2
		v *= 1 + tf*0.05
		want = append(want, int64(math.Round(v)))
	}
	for i := range want {
		if points[i].Value != want[i] {
			t.Errorf("point %d = %d, want %d", i, points[i].Value, want[i])
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	g := NewGenerator()
	tests := []Params{
		{Days: 0, CurrentValue: 450, Volatility: 0.1},
		{Days: 30, CurrentValue: 0, Volatility: 0.1},
		{Days: 30, CurrentValue: 450, Volatility: 1.5},
	}
	for _, p := range tests {
		if _, err := g.Generate(p); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Generate(%+v) error = %v, want INVALID_CONFIG", p, err)
		}
	}
}

func TestGenerateClampsToOne(t *testing.T) {
	g := NewGenerator(WithRand(constRand(0)), WithNow(fixedNow))
	points, err := g.Generate(Params{Days: 5, CurrentValue: 0.4, Volatility: 0.9})
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if p.Value < 1 {
			t.Errorf("point %d = %d, want >= 1", i, p.Value)
		}
	}
}

func TestTimeframes(t *testing.T) {
	tests := []struct {
		in   string
		days int
		vol  float64
	}{
		{"1w", 7, 0.05},
		{"1M", 30, 0.12},
		{"3m", 90, 0.25},
		{" 1y ", 365, 0.4},
	}
	for _, tt := range tests {
		tf, err := ParseTimeframe(tt.in)
		if err != nil {
			t.Fatalf("ParseTimeframe(%q): %v", tt.in, err)
		}
		p := tf.Params(450)
		if p.Days != tt.days || p.Volatility != tt.vol || p.CurrentValue != 450 {
			t.Errorf("%s.Params() = %+v", tf, p)
		}
	}
	if _, err := ParseTimeframe("5d"); err == nil {
		t.Error("expected error for unknown timeframe")
	}
	if Quarter.Phrase() != "past quarter" {
		t.Errorf("Phrase() = %q", Quarter.Phrase())
	}
}

func TestProject(t *testing.T) {
	points := []Point{{Value: 100}, {Value: 200}, {Value: 150}}
	got := Project(points, 300, 100)

	if got[0].X != 0 || got[2].X != 300 || got[1].X != 150 {
		t.Errorf("x positions = %v", got)
	}
	// min=90, max=220, range=130
	wantY0 := 100 - (100-90)/130.0*70 - 10
	if math.Abs(got[0].Y-wantY0) > 1e-9 {
		t.Errorf("y0 = %v, want %v", got[0].Y, wantY0)
	}
	if got[1].Y >= got[0].Y {
		t.Error("higher values must sit higher on screen")
	}
}

func TestMovingAverage(t *testing.T) {
	points := make([]Point, 6)
	for i := range points {
		points[i].Value = int64(i + 1)
	}
	avg, err := MovingAverage(points, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []Average{{2, 2}, {3, 3}, {4, 4}, {5, 5}}
	if len(avg) != len(want) {
		t.Fatalf("len = %d, want %d", len(avg), len(want))
	}
	for i := range want {
		if avg[i].Index != want[i].Index || math.Abs(avg[i].Value-want[i].Value) > 1e-9 {
			t.Errorf("avg[%d] = %+v, want %+v", i, avg[i], want[i])
		}
	}

	if _, err := MovingAverage(points, 1); err == nil {
		t.Error("expected error for period 1")
	}
	if got, _ := MovingAverage(points[:2], 3); got != nil {
		t.Errorf("short series should yield no averages, got %v", got)
	}
}

func TestBands(t *testing.T) {
	points := make([]Point, 10)
	for i := range points {
		points[i].Value = 100
	}
	env, err := Bands(points, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(env) != 6 {
		t.Fatalf("len = %d, want 6", len(env))
	}
	for _, e := range env {
		if math.Abs(e.Middle-100) > 1e-9 || math.Abs(e.Upper-e.Lower) > 1e-6 {
			t.Errorf("flat series envelope = %+v", e)
		}
	}
}
