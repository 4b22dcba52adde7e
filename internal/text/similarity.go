package text

// EditDistance returns the Levenshtein distance between a and b: the minimum
// number of single-character insertions, deletions and substitutions turning
// a into b. Characters are runes, so CJK text counts one per character.
//
// The full (m+1)x(n+1) table is kept; inputs are paragraph sized.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			dp[i][j] = min(
				dp[i-1][j]+1,      // delete
				dp[i][j-1]+1,      // insert
				dp[i-1][j-1]+cost, // substitute or match
			)
		}
	}

	return dp[m][n]
}

// Similarity normalizes the edit distance of a and b into [0,1].
// Identical strings (including two empty strings) score 1.0; a non-empty
// string against an empty one scores 0.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0.0
	}

	longer, shorter, longerLen := a, b, la
	if lb > la {
		longer, shorter, longerLen = b, a, lb
	}

	dist := EditDistance(longer, shorter)
	return 1.0 - float64(dist)/float64(longerLen)
}
