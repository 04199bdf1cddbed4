package cluster

import (
	"math"
	"math/rand"
)

const (
	powerIterations = 200
	powerTolerance  = 1e-10
)

// Projection is a fitted linear projection onto the leading principal
// components of a population's embeddings. It is immutable once fitted.
type Projection struct {
	Mean       []float64
	Components [][]float64
	// Size is the output length; missing components project to 0.
	Size int
}

// FitProjection fits up to k principal components of data with power
// iteration and deflation. Random starts come from seed.
func FitProjection(data [][]float32, k int, seed int64) *Projection {
	p := &Projection{Size: k}
	if len(data) == 0 || k <= 0 {
		return p
	}
	dim := len(data[0])
	n := float64(len(data))

	p.Mean = make([]float64, dim)
	for _, row := range data {
		for j := 0; j < dim && j < len(row); j++ {
			p.Mean[j] += float64(row[j])
		}
	}
	for j := range p.Mean {
		p.Mean[j] /= n
	}

	cov := make([][]float64, dim)
	for i := range cov {
		cov[i] = make([]float64, dim)
	}
	centered := make([]float64, dim)
	for _, row := range data {
		for j := range centered {
			centered[j] = 0
			if j < len(row) {
				centered[j] = float64(row[j]) - p.Mean[j]
			}
		}
		for a := 0; a < dim; a++ {
			if centered[a] == 0 {
				continue
			}
			ca := centered[a]
			ra := cov[a]
			for b := a; b < dim; b++ {
				ra[b] += ca * centered[b]
			}
		}
	}
	for a := 0; a < dim; a++ {
		for b := a; b < dim; b++ {
			cov[a][b] /= n
			cov[b][a] = cov[a][b]
		}
	}

	rng := rand.New(rand.NewSource(seed))
	limit := k
	if dim < limit {
		limit = dim
	}
	for c := 0; c < limit; c++ {
		vec, val := powerIteration(cov, rng)
		if val <= 1e-12 {
			break
		}
		p.Components = append(p.Components, vec)
		// deflate
		for a := 0; a < dim; a++ {
			for b := 0; b < dim; b++ {
				cov[a][b] -= val * vec[a] * vec[b]
			}
		}
	}
	return p
}

// powerIteration returns the dominant unit eigenvector of the symmetric
// matrix m and its eigenvalue. The sign is fixed so the largest-magnitude
// coordinate is positive.
func powerIteration(m [][]float64, rng *rand.Rand) ([]float64, float64) {
	dim := len(m)
	v := make([]float64, dim)
	for i := range v {
		v[i] = rng.Float64() - 0.5
	}
	normalize(v)
	next := make([]float64, dim)
	var val float64
	for it := 0; it < powerIterations; it++ {
		for a := 0; a < dim; a++ {
			var s float64
			for b, x := range m[a] {
				s += x * v[b]
			}
			next[a] = s
		}
		val = normalize(next)
		if val == 0 {
			return v, 0
		}
		var diff float64
		for i := range v {
			d := next[i] - v[i]
			diff += d * d
		}
		copy(v, next)
		if diff < powerTolerance {
			break
		}
	}
	fixSign(v)
	return v, val
}

func normalize(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	norm := math.Sqrt(s)
	if norm == 0 {
		return 0
	}
	for i := range v {
		v[i] /= norm
	}
	return norm
}

func fixSign(v []float64) {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if len(v) > 0 && v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}

// Transform projects one embedding. The result always has length Size.
func (p *Projection) Transform(v []float32) []float64 {
	out := make([]float64, p.Size)
	for c, comp := range p.Components {
		if c >= p.Size {
			break
		}
		var s float64
		for j, w := range comp {
			if j < len(v) {
				s += (float64(v[j]) - p.Mean[j]) * w
			}
		}
		out[c] = s
	}
	return out
}
