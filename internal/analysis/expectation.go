package analysis

// Harmonic returns H(n) = 1 + 1/2 + ... + 1/n, and 0 for n < 1
func Harmonic(n int) float64 {
	h := 0.0
	// smallest terms first to limit rounding error
	for k := n; k >= 1; k-- {
		h += 1 / float64(k)
	}
	return h
}

// ExpectedDraws is the closed-form mean number of draws needed to collect
// all n items: n * H(n)
func ExpectedDraws(n int) float64 {
	return float64(n) * Harmonic(n)
}

// RelativeError returns |observed - expected| / expected, or 0 when expected is 0
func RelativeError(observed, expected float64) float64 {
	if expected == 0 {
		return 0
	}
	d := observed - expected
	if d < 0 {
		d = -d
	}
	return d / expected
}
