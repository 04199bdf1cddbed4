package vector

import (
	"fmt"
	"sort"
)

// Matrix is a dense row-major similarity matrix. Row i belongs to source
// entity i and column j to target entity j, by position.
type Matrix struct {
	Rows int
	Cols int
	data []float64
}

// At returns S[i][j].
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.Cols+j]
}

// Row returns row i. The slice aliases the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.Cols : (i+1)*m.Cols]
}

// Similarity builds S (len(a) x len(b)) with S[i][j] = cosine(a[i], b[j]).
// All vectors must share one dimension.
func Similarity(a, b [][]float32) (*Matrix, error) {
	if err := checkDims(a, b); err != nil {
		return nil, err
	}
	return similarity(NormalizeRows(a), NormalizeRows(b)), nil
}

// Similarity64 is Similarity for float64 feature vectors.
func Similarity64(a, b [][]float64) (*Matrix, error) {
	dim := -1
	for _, set := range [][][]float64{a, b} {
		for i, v := range set {
			if dim < 0 {
				dim = len(v)
			} else if len(v) != dim {
				return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
			}
		}
	}
	return similarity(NormalizeRows64(a), NormalizeRows64(b)), nil
}

func similarity(ua, ub [][]float64) *Matrix {
	m := &Matrix{Rows: len(ua), Cols: len(ub), data: make([]float64, len(ua)*len(ub))}
	for i, x := range ua {
		row := m.data[i*m.Cols : (i+1)*m.Cols]
		for j, y := range ub {
			row[j] = clamp(dot64(x, y))
		}
	}
	return m
}

func checkDims(a, b [][]float32) error {
	dim := -1
	for _, set := range [][][]float32{a, b} {
		for i, v := range set {
			if dim < 0 {
				dim = len(v)
			} else if len(v) != dim {
				return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
			}
		}
	}
	return nil
}

// Hit is a ranked column of a similarity row.
type Hit struct {
	Index int
	Score float64
}

// TopK returns the k highest-scoring positions of row, best first.
// Ties keep ascending index order. Positions listed in exclude are skipped.
func TopK(row []float64, k int, exclude ...int) []Hit {
	if k <= 0 || len(row) == 0 {
		return []Hit{}
	}
	skip := make(map[int]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	hits := make([]Hit, 0, len(row))
	for i, s := range row {
		if _, ok := skip[i]; ok {
			continue
		}
		hits = append(hits, Hit{Index: i, Score: s})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}

// TopKPerRow applies TopK to every row of m.
func TopKPerRow(m *Matrix, k int) [][]Hit {
	out := make([][]Hit, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = TopK(m.Row(i), k)
	}
	return out
}
