package live

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// FeedSize is the number of pulse items a Feed keeps.
const FeedSize = 10

// Kind classifies a market pulse item.
type Kind string

const (
	KindPremium    Kind = "premium"
	KindWatchlist  Kind = "watchlist"
	KindMarket     Kind = "market"
	KindGovernance Kind = "governance"
)

var kinds = []Kind{KindPremium, KindWatchlist, KindMarket, KindGovernance}

var generatedTitles = []string{"Pharoah Bloodline", "Eclipse Stakes Winner", "New G1 Addition", "Governance Vote"}

// Item is one market pulse entry. Change is nil for items without a price
// movement, such as governance polls.
type Item struct {
	ID     string   `json:"id" msgpack:"id"`
	Kind   Kind     `json:"kind" msgpack:"kind"`
	Title  string   `json:"title" msgpack:"title"`
	Value  string   `json:"value" msgpack:"value"`
	Change *float64 `json:"change,omitempty" msgpack:"change,omitempty"`
	Time   string   `json:"time" msgpack:"time"`
}

// Up reports whether the item carries a non-negative change.
func (it Item) Up() bool { return it.Change != nil && *it.Change >= 0 }

// Feed is the market pulse ticker, newest item first.
type Feed struct {
	items []Item
}

// NewFeed returns a feed seeded with items, newest first. Items past
// FeedSize are dropped.
func NewFeed(items ...Item) *Feed {
	f := &Feed{items: slices.Clone(items)}
	if len(f.items) > FeedSize {
		f.items = f.items[:FeedSize]
	}
	return f
}

// DefaultFeed returns the feed shown when the dashboard opens.
func DefaultFeed() *Feed {
	change := func(v float64) *float64 { return &v }
	return NewFeed(
		Item{ID: "1", Kind: KindPremium, Title: "Northern Dancer Breeding Right", Value: "1,250 $TABLE", Change: change(12.5), Time: "2m ago"},
		Item{ID: "2", Kind: KindWatchlist, Title: "Secretariat Offspring", Value: "850 $TABLE", Change: change(5.2), Time: "5m ago"},
		Item{ID: "3", Kind: KindMarket, Title: "Average Stud Fee", Value: "320 $TABLE", Change: change(-2.1), Time: "10m ago"},
		Item{ID: "4", Kind: KindGovernance, Title: "Breeding Season Extension", Value: "Poll Closing", Time: "2h remaining"},
		Item{ID: "5", Kind: KindPremium, Title: "Triple Crown Package", Value: "3,200 $TABLE", Change: change(8.7), Time: "15m ago"},
	)
}

// Push prepends it and drops the oldest items beyond FeedSize.
func (f *Feed) Push(it Item) {
	f.items = slices.Insert(f.items, 0, it)
	if len(f.items) > FeedSize {
		f.items = f.items[:FeedSize]
	}
}

// Items returns a copy of the feed, newest first.
func (f *Feed) Items() []Item { return slices.Clone(f.items) }

// Len returns the number of items.
func (f *Feed) Len() int { return len(f.items) }

// Generate builds a random pulse item. Seven in ten items carry a change in
// [-5, 10) rounded to one decimal.
func Generate(rng *rand.Rand) Item {
	it := Item{
		ID:    uuid.NewString(),
		Kind:  kinds[rng.IntN(len(kinds))],
		Title: generatedTitles[rng.IntN(len(generatedTitles))],
		Value: fmt.Sprintf("%d $TABLE", rng.IntN(1000)+100),
		Time:  "Just now",
	}
	if rng.Float64() > 0.3 {
		c := math.Round((rng.Float64()*15-5)*10) / 10
		it.Change = &c
	}
	return it
}

// FormatChange renders a change as "+12.5%" or "-2.1%"; items without a
// change render empty.
func FormatChange(c *float64) string {
	if c == nil {
		return ""
	}
	s := strconv.FormatFloat(*c, 'f', 1, 64) + "%"
	if *c >= 0 {
		s = "+" + s
	}
	return s
}
