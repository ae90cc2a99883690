package live

import "fmt"

// Countdown is an auction clock. It is a value: Tick returns the next state.
type Countdown struct {
	H int `json:"hours" toml:"hours"`
	M int `json:"minutes" toml:"minutes"`
	S int `json:"seconds" toml:"seconds"`
}

// AuctionCountdown is the starting clock of a new auction.
func AuctionCountdown() Countdown { return Countdown{H: 23, M: 59, S: 59} }

// Tick returns the countdown one second later. Seconds borrow from minutes
// and minutes from hours; an expired countdown stays at zero.
func (c Countdown) Tick() Countdown {
	switch {
	case c.S > 0:
		c.S--
	case c.M > 0:
		c.M--
		c.S = 59
	case c.H > 0:
		c.H--
		c.M, c.S = 59, 59
	}
	return c
}

// Expired reports whether the countdown reached zero.
func (c Countdown) Expired() bool { return c.H <= 0 && c.M <= 0 && c.S <= 0 }

// Seconds returns the remaining time in seconds.
func (c Countdown) Seconds() int { return c.H*3600 + c.M*60 + c.S }

// String formats the countdown as HH:MM:SS.
func (c Countdown) String() string { return fmt.Sprintf("%02d:%02d:%02d", c.H, c.M, c.S) }
