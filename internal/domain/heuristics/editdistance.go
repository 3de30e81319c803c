package heuristics

// EditDistance calculates the minimum number of single-character insertions,
// deletions, or substitutions needed to transform a into b.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Base cases: if either string is empty, distance is the other string's length
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// DP table: matrix[i][j] = distance between a[0:i] and b[0:j]
	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
	}

	// Initialize first row and column
	// matrix[i][0] represents deleting all i characters from a
	// matrix[0][j] represents inserting all j characters from b
	for i := 0; i <= len(ra); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			// Cost of substitution: 0 if characters match, 1 otherwise
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	// Bottom-right cell contains the final distance
	return matrix[len(ra)][len(rb)]
}
