package insights

// SafeRatio returns num/den, or fallback when den is zero.
func SafeRatio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// Percent is 100*num/den with 0 for a zero denominator.
func Percent(num, den float64) float64 {
	return 100 * SafeRatio(num, den, 0)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return SafeRatio(sum, float64(len(values)), 0)
}
