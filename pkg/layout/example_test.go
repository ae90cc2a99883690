package layout_test

import (
	"fmt"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/layout"
)

func ExampleStacked() {
	// Owner stakes fill the canvas from the bottom edge upward
	owners := entity.Set{
		{ID: "syndicate", Label: "Syndicate", Weight: 0.5, Category: entity.Owner},
		{ID: "farm", Label: "Farm", Weight: 0.3, Category: entity.Owner},
		{ID: "public", Label: "Public", Weight: 0.2, Category: entity.Owner},
	}

	bands, err := layout.Stacked(owners, 200)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, b := range bands {
		fmt.Printf("%-9s %5.1f -> %5.1f\n", b.ID, b.Bottom, b.Top)
	}
	// Output:
	// syndicate 200.0 -> 100.0
	// farm      100.0 ->  40.0
	// public     40.0 ->   0.0
}

func ExampleApportion() {
	// Seven helix nodes shared among three genetic markers
	markers := entity.Set{
		{ID: "speed", Weight: 0.5, Category: entity.Marker},
		{ID: "stamina", Weight: 0.3, Category: entity.Marker},
		{ID: "temper", Weight: 0.2, Category: entity.Marker},
	}

	counts, err := layout.Apportion(markers, 7)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("counts:", counts)
	fmt.Println("total:", counts[0]+counts[1]+counts[2])
	// Output:
	// counts: [4 2 1]
	// total: 7
}
