package identity

// AverageRating returns the arithmetic mean of the supplied star values,
// or 0 when none exist. Call it on every mutation of a supplier's ratings
// so the stored average never drifts from the raw list.
func AverageRating(ratings []int64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int64
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
