package util

func CopyIntSlice(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func CopyFloatSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// ArgMax returns the lowest index holding the largest value, -1 for an empty slice
func ArgMax(s []float64) int {
	best := -1
	for i, v := range s {
		if best == -1 || v > s[best] {
			best = i
		}
	}
	return best
}
