package outcome_test

import (
	"fmt"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/outcome"
)

func ExampleResolver_Sample() {
	traits := entity.Set{
		{ID: "speed", Label: "Speed", Weight: 0.5, Category: entity.Trait},
		{ID: "stamina", Label: "Stamina", Weight: 0.3, Category: entity.Trait},
		{ID: "temper", Label: "Temperament", Weight: 0.2, Category: entity.Trait},
	}
	r, err := outcome.NewResolver(traits, outcome.WithSeed(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, u := range []float64{0.1, 0.55, 0.95} {
		fmt.Printf("u=%.2f -> %s\n", u, traits[r.Sample(u)].Label)
	}
	// Output:
	// u=0.10 -> Speed
	// u=0.55 -> Stamina
	// u=0.95 -> Temperament
}
