package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
)

// Apportion distributes n discrete slots among the entities proportionally to
// their weights using the largest-remainder method. The counts always sum to
// n. Ties on the remainder go to the earlier entity.
func Apportion(set entity.Set, n int) ([]int, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "slot count must not be negative, got %d", n)
	}
	norm, err := Normalize(set.Weights())
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(norm))
	rems := make([]float64, len(norm))
	assigned := 0
	for i, w := range norm {
		exact := w * float64(n)
		counts[i] = int(math.Floor(exact + eps))
		rems[i] = exact - float64(counts[i])
		assigned += counts[i]
	}

	order := make([]int, len(norm))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rems[order[a]] > rems[order[b]]
	})
	for k := 0; assigned < n; k++ {
		i := order[k%len(order)]
		if norm[i] == 0 {
			continue
		}
		counts[i]++
		assigned++
	}
	return counts, nil
}

// Assign expands apportioned counts into a per-slot entity index, keeping
// entity order. Slot k belongs to Assign(...)[k].
func Assign(counts []int) []int {
	var slots []int
	for i, c := range counts {
		for j := 0; j < c; j++ {
			slots = append(slots, i)
		}
	}
	return slots
}
