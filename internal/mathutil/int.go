package mathutil

func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits v to [lo, hi].
func IntClamp(v, lo, hi int) int {
	return IntMax(lo, IntMin(v, hi))
}

func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IsPowerOfTwo reports whether n is a positive power of two. Texture
// lookups mask coordinates with size-1 and depend on it.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
