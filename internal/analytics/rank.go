package analytics

import "sort"

// Rank assigns competition ("min") ranks in descending order of value.
// Only positive values take part: tied values share the lowest rank and the
// next distinct value is ranked one past the number of strictly better values.
// Entries with a value <= 0 get rank 0.
func Rank(values []float64) []int {
	ranks := make([]int, len(values))

	idx := make([]int, 0, len(values))
	for i, v := range values {
		if v > 0 {
			idx = append(idx, i)
		}
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}
