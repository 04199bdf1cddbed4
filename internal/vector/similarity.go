// Package vector provides cosine similarity, similarity matrices and
// embedding sets for the matching engine.
package vector

import "math"

// Dot returns the inner product of a and b, or 0 when lengths differ.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero-norm vector has similarity 0 with everything.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// NormalizeRows returns unit-length float64 copies of rows.
// Exact-zero rows stay zero so their dot products are 0.
func NormalizeRows(rows [][]float32) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		unit := make([]float64, len(row))
		norm := L2Norm(row)
		if norm > 0 {
			for j, v := range row {
				unit[j] = float64(v) / norm
			}
		}
		out[i] = unit
	}
	return out
}

// NormalizeRows64 is NormalizeRows for float64 input.
func NormalizeRows64(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		unit := make([]float64, len(row))
		var sum float64
		for _, v := range row {
			sum += v * v
		}
		if sum > 0 {
			norm := math.Sqrt(sum)
			for j, v := range row {
				unit[j] = v / norm
			}
		}
		out[i] = unit
	}
	return out
}

func dot64(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// clamp keeps rounding noise from pushing a cosine outside [-1, 1].
func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
