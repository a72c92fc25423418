package matching

// Matcher finds the corpus row closest to a query vector. An approximate
// index can replace BruteForce as long as it keeps the tie-break contract:
// among equal scores the lowest row index wins.
type Matcher interface {
	// Match returns the best row and its similarity. It returns (-1, 0)
	// when there are no rows.
	Match(query SparseVector) (int, float64)

	// Len returns the number of indexed rows.
	Len() int
}

// BruteForce scores the query against every row. O(rows × shared terms).
type BruteForce struct {
	rows []SparseVector
}

// NewBruteForce indexes rows without copying them; callers must not mutate
// rows afterwards.
func NewBruteForce(rows []SparseVector) *BruteForce {
	return &BruteForce{rows: rows}
}

// Len returns the number of indexed rows.
func (m *BruteForce) Len() int {
	return len(m.rows)
}

// Match scans rows left to right and keeps the first maximum.
func (m *BruteForce) Match(query SparseVector) (int, float64) {
	if len(m.rows) == 0 {
		return -1, 0
	}
	best, bestScore := 0, CosineSimilarity(query, m.rows[0])
	for i := 1; i < len(m.rows); i++ {
		if s := CosineSimilarity(query, m.rows[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// Confident reports whether a similarity clears the threshold. The
// comparison is strict: a score equal to the threshold is not confident.
func Confident(score, threshold float64) bool {
	return score > threshold
}
