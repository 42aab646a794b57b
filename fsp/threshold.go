package fsp

// MinThreshold is the exact lower bound for a grammar's threshold: the
// length of its longest fixed-width delimiter (keyword, operator, quote
// opener). Unbounded token content does not count; the lexer handles
// that by calling its refill hook repeatedly.
func MinThreshold(delims []string) int {
	longest := 0
	for _, d := range delims {
		if len(d) > longest {
			longest = len(d)
		}
	}
	return longest
}

// RecommendThreshold doubles MinThreshold for headroom and rounds up to
// a power of two. With no delimiters it returns DefaultThreshold.
func RecommendThreshold(delims []string) int {
	longest := MinThreshold(delims)
	if longest == 0 {
		return DefaultThreshold
	}
	r := 1
	for r < 2*longest {
		r <<= 1
	}
	return r
}
