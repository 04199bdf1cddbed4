package cluster

import "math"

// Silhouette returns the mean silhouette coefficient in [-1, 1]. Points in
// singleton clusters score 0. It is 0 when fewer than two clusters are
// populated or every point is its own cluster.
func Silhouette(data [][]float64, labels []int, k int) float64 {
	n := len(data)
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	populated := 0
	for _, s := range sizes {
		if s > 0 {
			populated++
		}
	}
	if populated < 2 || populated >= n {
		return 0
	}

	var total float64
	sum := make([]float64, k)
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] <= 1 {
			continue
		}
		for c := range sum {
			sum[c] = 0
		}
		for j := 0; j < n; j++ {
			if i != j {
				sum[labels[j]] += math.Sqrt(sqDist(data[i], data[j]))
			}
		}
		a := sum[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if m := sum[c] / float64(sizes[c]); m < b {
				b = m
			}
		}
		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}
	return total / float64(n)
}

// DaviesBouldin returns the Davies-Bouldin index; lower is better. It is 0
// when fewer than two clusters are populated.
func DaviesBouldin(data [][]float64, labels []int, centroids [][]float64) float64 {
	k := len(centroids)
	scatter := make([]float64, k)
	sizes := make([]int, k)
	for i, l := range labels {
		scatter[l] += math.Sqrt(sqDist(data[i], centroids[l]))
		sizes[l]++
	}
	var active []int
	for c := range scatter {
		if sizes[c] > 0 {
			scatter[c] /= float64(sizes[c])
			active = append(active, c)
		}
	}
	if len(active) < 2 {
		return 0
	}
	var total float64
	for _, i := range active {
		worst := 0.0
		for _, j := range active {
			if i == j {
				continue
			}
			sep := math.Sqrt(sqDist(centroids[i], centroids[j]))
			if sep == 0 {
				continue
			}
			if r := (scatter[i] + scatter[j]) / sep; r > worst {
				worst = r
			}
		}
		total += worst
	}
	return total / float64(len(active))
}
