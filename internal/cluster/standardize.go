package cluster

import "math"

// Standardizer holds per-column mean and scale fitted over a population.
// Zero-variance columns get scale 1 so they transform to 0.
type Standardizer struct {
	Mean  []float64
	Scale []float64
}

// FitStandardizer computes column statistics of rows.
func FitStandardizer(rows [][]float64) *Standardizer {
	s := &Standardizer{}
	if len(rows) == 0 {
		return s
	}
	dim := len(rows[0])
	n := float64(len(rows))
	s.Mean = make([]float64, dim)
	s.Scale = make([]float64, dim)
	for _, r := range rows {
		for j, v := range r {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, r := range rows {
		for j, v := range r {
			d := v - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		std := math.Sqrt(s.Scale[j] / n)
		if std < 1e-12 {
			std = 1
		}
		s.Scale[j] = std
	}
	return s
}

// Transform returns standardized copies of rows.
func (s *Standardizer) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		z := make([]float64, len(r))
		for j, v := range r {
			if j < len(s.Mean) {
				z[j] = (v - s.Mean[j]) / s.Scale[j]
			}
		}
		out[i] = z
	}
	return out
}
