package ahp

// Matrix is a completed pairwise comparison matrix: square, all entries
// positive, diagonal 1, and reciprocal by construction: cell (j, i) is
// stored as the exact floating-point reciprocal of cell (i, j), never
// looked up independently.
type Matrix struct {
	criteria []string
	cells    [][]float64
}

// BuildMatrix expands a sparse judgment set into the full reciprocal
// matrix. Pairs without a judgment come out as 1 (equal importance).
func BuildMatrix(cmp *Comparisons) *Matrix {
	n := len(cmp.criteria)
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
		cells[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := cmp.at(i, j)
			cells[i][j] = v
			cells[j][i] = 1 / v
		}
	}
	return &Matrix{criteria: cmp.Criteria(), cells: cells}
}

// Order returns the matrix dimension n.
func (m *Matrix) Order() int { return len(m.cells) }

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.cells[i][j] }

// Criteria returns the criterion names in row order.
func (m *Matrix) Criteria() []string {
	out := make([]string, len(m.criteria))
	copy(out, m.criteria)
	return out
}
