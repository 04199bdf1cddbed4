package cluster

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// KMeansResult is the best partition found across restarts.
type KMeansResult struct {
	Labels     []int
	Centroids  [][]float64
	Inertia    float64
	Iterations int
}

// KMeans partitions data into k clusters with k-means++ seeding and Lloyd
// iterations. Restart r draws from its own source seeded with seed+r, so the
// result only depends on the inputs. The lowest-inertia restart wins, ties
// going to the earlier restart. k is capped at len(data).
func KMeans(ctx context.Context, data [][]float64, k, restarts, maxIter int, tol float64, seed int64) (*KMeansResult, error) {
	n := len(data)
	if n == 0 || k <= 0 {
		return &KMeansResult{Labels: []int{}}, nil
	}
	if k > n {
		k = n
	}
	if restarts <= 0 {
		restarts = 1
	}

	results := make([]*KMeansResult, restarts)
	g, ctx := errgroup.WithContext(ctx)
	for r := 0; r < restarts; r++ {
		r := r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(r)))
			results[r] = lloyd(data, seedCentroids(data, k, rng), maxIter, tol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// seedCentroids picks k initial centroids with k-means++.
func seedCentroids(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(data)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(data[rng.Intn(n)]))

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = sqDist(data[i], centroids[0])
	}
	for len(centroids) < k {
		var total float64
		for _, d := range dist {
			total += d
		}
		next := 0
		if total == 0 {
			// every point coincides with a centroid
			next = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target < 0 {
					next = i
					break
				}
				next = i
			}
		}
		c := clone(data[next])
		centroids = append(centroids, c)
		for i := range dist {
			if d := sqDist(data[i], c); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centroids
}

func lloyd(data [][]float64, centroids [][]float64, maxIter int, tol float64) *KMeansResult {
	n, k := len(data), len(centroids)
	dim := len(data[0])
	labels := make([]int, n)
	res := &KMeansResult{}

	for it := 1; it <= maxIter; it++ {
		res.Iterations = it
		assign(data, centroids, labels)
		sums, counts := tally(data, labels, k, dim)
		fillEmpty(data, centroids, labels, sums, counts)

		var shift float64
		for c := range centroids {
			for j := range sums[c] {
				sums[c][j] /= float64(counts[c])
			}
			shift += sqDist(centroids[c], sums[c])
			centroids[c] = sums[c]
		}
		if shift <= tol {
			break
		}
	}
	// Coincident points can collapse two centroids; the final assignment
	// is repaired the same way so no cluster ends up empty.
	assign(data, centroids, labels)
	sums, counts := tally(data, labels, k, dim)
	fillEmpty(data, centroids, labels, sums, counts)
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range sums[c] {
			sums[c][j] /= float64(counts[c])
		}
		centroids[c] = sums[c]
	}

	res.Labels = labels
	res.Centroids = centroids
	for i, l := range labels {
		res.Inertia += sqDist(data[i], centroids[l])
	}
	return res
}

// tally returns the per-cluster coordinate sums and member counts.
func tally(data [][]float64, labels []int, k, dim int) ([][]float64, []int) {
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, l := range labels {
		counts[l]++
		for j, v := range data[i] {
			sums[l][j] += v
		}
	}
	return sums, counts
}

// fillEmpty moves the point farthest from its centroid into each empty
// cluster. The donor cluster always keeps at least one member.
func fillEmpty(data, centroids [][]float64, labels []int, sums [][]float64, counts []int) {
	for c := range counts {
		if counts[c] > 0 {
			continue
		}
		far, farDist := -1, -1.0
		for i, l := range labels {
			if counts[l] <= 1 {
				continue
			}
			if d := sqDist(data[i], centroids[l]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			return
		}
		old := labels[far]
		counts[old]--
		for j, v := range data[far] {
			sums[old][j] -= v
		}
		labels[far] = c
		counts[c] = 1
		copy(sums[c], data[far])
	}
}

// assign labels each point with its nearest centroid, lowest index on ties.
func assign(data, centroids [][]float64, labels []int) {
	for i, p := range data {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(p, centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
	}
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
