package config

import (
	"github.com/matzehuels/paddock/pkg/anim"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/live"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget/constellation"
	"github.com/matzehuels/paddock/pkg/widget/helix"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
)

// Default returns the demo dashboard for Secretariat.
func Default() *Config {
	return &Config{
		Horse:   "Secretariat",
		Surface: draw.NewSurface(constellation.DesignWidth, constellation.DesignHeight, draw.DefaultDPR),
		Wheel: Wheel{
			Outcomes: entity.Set{
				{Label: "Speed", Weight: 0.25, Category: entity.Trait, ColorToken: "hsl(160, 94%, 43%)"},
				{Label: "Stamina", Weight: 0.2, Category: entity.Trait, ColorToken: "hsl(190, 94%, 43%)"},
				{Label: "Temperament", Weight: 0.15, Category: entity.Trait, ColorToken: "hsl(220, 94%, 43%)"},
				{Label: "Conformation", Weight: 0.15, Category: entity.Trait, ColorToken: "hsl(250, 94%, 43%)"},
				{Label: "Heart", Weight: 0.1, Category: entity.Trait, ColorToken: "hsl(280, 94%, 43%)"},
				{Label: "Intelligence", Weight: 0.1, Category: entity.Trait, ColorToken: "hsl(310, 94%, 43%)"},
				{Label: "Rare Trait", Weight: 0.05, Category: entity.Trait, ColorToken: "hsl(46, 94%, 43%)"},
			},
			MinTurns:   outcome.DefaultMinTurns,
			MaxTurns:   outcome.DefaultMaxTurns,
			DurationMS: int(anim.DefaultDuration.Milliseconds()),
		},
		Ownership: Ownership{
			Owners: entity.Set{
				{ID: "1", Label: "You", Weight: 0.35, Category: entity.Owner},
				{ID: "2", Label: "BloodstockPro", Weight: 0.25, Category: entity.Owner},
				{ID: "3", Label: "EquineVentures", Weight: 0.2, Category: entity.Owner},
				{ID: "4", Label: "StableInc", Weight: 0.15, Category: entity.Owner},
				{ID: "5", Label: "Other Holders", Weight: 0.05, Category: entity.Owner},
			},
		},
		Constellation: Constellation{Stars: []constellation.Star{
			{Name: "Secretariat", X: 300, Y: 150, Size: 10, Brightness: 1, Lineage: entity.Self},
			{Name: "Bold Ruler", X: 200, Y: 100, Size: 8, Brightness: 0.9, Lineage: entity.Sire},
			{Name: "Somethingroyal", X: 400, Y: 100, Size: 8, Brightness: 0.9, Lineage: entity.Dam},
			{Name: "Nasrullah", X: 150, Y: 50, Size: 6, Brightness: 0.8, Lineage: entity.Sire},
			{Name: "Miss Disco", X: 250, Y: 50, Size: 6, Brightness: 0.8, Lineage: entity.Dam},
			{Name: "Princequillo", X: 350, Y: 50, Size: 6, Brightness: 0.8, Lineage: entity.Sire},
			{Name: "Imperatrice", X: 450, Y: 50, Size: 6, Brightness: 0.8, Lineage: entity.Dam},
			{Name: "Near", X: 100, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Sire},
			{Name: "Mumtaz Begum", X: 175, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Dam},
			{Name: "Discovery", X: 225, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Sire},
			{Name: "Outdone", X: 275, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Dam},
			{Name: "Prince Rose", X: 325, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Sire},
			{Name: "Cosquilla", X: 375, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Dam},
			{Name: "Caruso", X: 425, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Sire},
			{Name: "Cinquepace", X: 475, Y: 25, Size: 4, Brightness: 0.7, Lineage: entity.Dam},
		}},
		Pedigree: Pedigree{
			Root: pedigree.Horse{
				Name: "Secretariat",
				Sire: &pedigree.Horse{
					Name: "Bold Ruler",
					Sire: &pedigree.Horse{Name: "Nasrullah", Sire: &pedigree.Horse{Name: "Near"}, Dam: &pedigree.Horse{Name: "Mumtaz Begum"}},
					Dam:  &pedigree.Horse{Name: "Miss Disco", Sire: &pedigree.Horse{Name: "Discovery"}, Dam: &pedigree.Horse{Name: "Outdone"}},
				},
				Dam: &pedigree.Horse{
					Name: "Somethingroyal",
					Sire: &pedigree.Horse{Name: "Princequillo", Sire: &pedigree.Horse{Name: "Prince Rose"}, Dam: &pedigree.Horse{Name: "Cosquilla"}},
					Dam:  &pedigree.Horse{Name: "Imperatrice", Sire: &pedigree.Horse{Name: "Caruso"}, Dam: &pedigree.Horse{Name: "Cinquepace"}},
				},
			},
			Depth: 3,
		},
		Helix: Helix{
			Markers: entity.Set{
				{ID: "speed", Label: "Speed (Dominant)", Weight: 0.6, Category: entity.Marker, ColorToken: draw.TokenPrimary},
				{ID: "stamina", Label: "Stamina (Recessive)", Weight: 0.4, Category: entity.Marker, ColorToken: draw.TokenSecondary},
			},
			Nodes: helix.DefaultNodes,
			Score: 92,
		},
		Terrain: Terrain{
			TokenValue:    450,
			Timeframe:     series.DefaultTimeframe,
			MovingAverage: 7,
		},
		Live: Live{
			Countdown:     live.AuctionCountdown(),
			PulseSeconds:  int(live.PulseInterval.Seconds()),
			CountdownTick: int(live.CountdownInterval.Seconds()),
		},
	}
}
