package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Min3 returns the minimum of three integers.
func Min3(a, b, c int) int {
	return Min(Min(a, b), c)
}

// Min4 returns the minimum of four integers.
func Min4(a, b, c, d int) int {
	return Min(Min3(a, b, c), d)
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
