package cluster

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/careermatch/internal/career"
)

// blobs returns n points per center with small deterministic offsets.
func blobs(centers [][]float64, n int) [][]float64 {
	var out [][]float64
	for _, c := range centers {
		for i := 0; i < n; i++ {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + 0.01*float64((i*7+j*3)%5-2)
			}
			out = append(out, p)
		}
	}
	return out
}

func TestKMeans_SeparatesBlobs(t *testing.T) {
	data := blobs([][]float64{{0, 0}, {10, 10}, {-10, 10}}, 6)
	res, err := KMeans(context.Background(), data, 3, 5, 100, 1e-6, 42)
	require.NoError(t, err)
	require.Len(t, res.Labels, 18)

	for b := 0; b < 3; b++ {
		first := res.Labels[b*6]
		for i := 1; i < 6; i++ {
			assert.Equal(t, first, res.Labels[b*6+i], "blob %d split", b)
		}
	}
	assert.NotEqual(t, res.Labels[0], res.Labels[6])
	assert.NotEqual(t, res.Labels[6], res.Labels[12])
	assert.Less(t, res.Inertia, 0.1)
}

func TestKMeans_Deterministic(t *testing.T) {
	data := blobs([][]float64{{0, 0, 1}, {3, 1, 0}, {1, 4, 2}, {5, 5, 5}}, 10)
	a, err := KMeans(context.Background(), data, 7, 10, 300, 1e-4, 42)
	require.NoError(t, err)
	b, err := KMeans(context.Background(), data, 7, 10, 300, 1e-4, 42)
	require.NoError(t, err)
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Inertia, b.Inertia)
}

func TestKMeans_KLargerThanData(t *testing.T) {
	data := [][]float64{{0}, {1}, {2}}
	res, err := KMeans(context.Background(), data, 7, 3, 50, 1e-4, 1)
	require.NoError(t, err)
	assert.Len(t, res.Centroids, 3)
	seen := map[int]bool{}
	for _, l := range res.Labels {
		seen[l] = true
	}
	assert.Len(t, seen, 3)

	empty, err := KMeans(context.Background(), nil, 7, 3, 50, 1e-4, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Labels)
}

func TestKMeans_CoincidentPointsFillEveryCluster(t *testing.T) {
	data := make([][]float64, 0, 10)
	for i := 0; i < 9; i++ {
		data = append(data, []float64{0, 0})
	}
	data = append(data, []float64{5, 5})

	res, err := KMeans(context.Background(), data, 7, 3, 50, 1e-4, 42)
	require.NoError(t, err)
	require.Len(t, res.Centroids, 7)

	sizes := make([]int, 7)
	for _, l := range res.Labels {
		sizes[l]++
	}
	for c, n := range sizes {
		assert.Positive(t, n, "cluster %d is empty: %v", c, sizes)
	}
}

func TestKMeans_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := KMeans(ctx, [][]float64{{0}, {1}}, 2, 2, 10, 1e-4, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStandardizer(t *testing.T) {
	rows := [][]float64{{1, 5}, {3, 5}, {5, 5}}
	s := FitStandardizer(rows)
	assert.Equal(t, []float64{3, 5}, s.Mean)
	assert.Equal(t, 1.0, s.Scale[1], "zero variance column keeps unit scale")

	z := s.Transform(rows)
	var sum, sq float64
	for _, r := range z {
		sum += r[0]
		sq += r[0] * r[0]
		assert.Zero(t, r[1])
	}
	assert.InDelta(t, 0, sum/3, 1e-12)
	assert.InDelta(t, 1, sq/3, 1e-12)
}

func TestFitProjection(t *testing.T) {
	// variance lies along the first axis
	data := [][]float32{{-2, 0, 0.1}, {-1, 0, -0.1}, {1, 0, -0.1}, {2, 0, 0.1}}
	p := FitProjection(data, 4, 42)

	require.NotEmpty(t, p.Components)
	assert.LessOrEqual(t, len(p.Components), 3)
	assert.InDelta(t, 1, math.Abs(p.Components[0][0]), 1e-6)

	out := p.Transform([]float32{3, 0, 0})
	assert.Len(t, out, 4, "output padded to requested size")
	assert.InDelta(t, 3, out[0], 1e-6)

	again := FitProjection(data, 4, 42)
	assert.Equal(t, p.Components, again.Components)

	assert.Len(t, FitProjection(nil, 32, 1).Transform([]float32{1, 2}), 32)
}

func TestLabel_MajorityAndTies(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, 2, 2}
	careers := []career.Category{
		career.Data, career.Data, career.Cloud,
		career.Cloud, career.Software,
		career.Network, career.Software,
	}
	got := Label(labels, careers, 4)

	assert.Equal(t, career.Data, got[0])
	// Cloud and Software both have 2 members overall; Cloud sorts first.
	assert.Equal(t, career.Cloud, got[1])
	// Software has more population than Network.
	assert.Equal(t, career.Software, got[2])
	assert.Equal(t, career.Other, got[3], "empty cluster")
}

func TestProfiles(t *testing.T) {
	members := []Member{
		{ID: "a", GPA: 3.0, Attendance: 90, MissingByPriority: []string{"docker", "aws", "k8s", "go", "sql", "rust"}},
		{ID: "b", GPA: 3.5, Attendance: 80, MissingByPriority: []string{"docker", "rust"}},
		{ID: "c", GPA: 2.0, Attendance: 70},
	}
	names := []career.Category{career.Cloud, career.Data}
	profiles := Profiles(members, []int{0, 0, 1}, names, 5, 2)

	require.Len(t, profiles, 2)
	p := profiles[0]
	assert.Equal(t, 0, p.ClusterID)
	assert.Equal(t, "Cloud", p.Label)
	assert.Equal(t, 2, p.MemberCount)
	assert.Equal(t, 3.25, p.AvgGPA)
	assert.Equal(t, 85.0, p.AvgAttendance)
	assert.Equal(t, []string{"a", "b"}, p.Members)
	// rust is beyond a's cap, so it counts once and ties are broken by name
	assert.Equal(t, []string{"docker", "aws"}, p.TopMissingSkills)

	assert.Empty(t, profiles[1].TopMissingSkills)
	assert.NotNil(t, profiles[1].TopMissingSkills)
}

func TestNetwork_ExcludesSelf(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	features := [][]float64{{1, 0}, {0.9, 0.1}, {0, 1}, {-1, 0}}
	edges, err := Network(ids, features, 2)
	require.NoError(t, err)
	require.Len(t, edges, 4)
	for _, e := range edges {
		assert.NotContains(t, e.Similar, e.StudentID)
		assert.LessOrEqual(t, len(e.Similar), 2)
	}
	assert.Equal(t, []string{"b", "c"}, edges[0].Similar)
}

func TestQuality(t *testing.T) {
	data := [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
	labels := []int{0, 0, 1, 1}
	centroids := [][]float64{{0, 0.5}, {10, 0.5}}

	s := Silhouette(data, labels, 2)
	assert.Greater(t, s, 0.8)
	assert.LessOrEqual(t, s, 1.0)
	assert.InDelta(t, 0.1, DaviesBouldin(data, labels, centroids), 1e-9)

	assert.Zero(t, Silhouette(data, []int{0, 0, 0, 0}, 1))
	assert.Zero(t, DaviesBouldin(data, []int{0, 0, 0, 0}, centroids[:1]))
}

func population(n int) []Member {
	cats := career.Categories()
	members := make([]Member, n)
	for i := range members {
		emb := make([]float32, 8)
		emb[i%8] = 1
		emb[(i*3)%8] += 0.5
		members[i] = Member{
			ID:                fmt.Sprintf("s%02d", i),
			GPA:               2 + float64(i%5)*0.4,
			Attendance:        60 + float64(i%7)*5,
			Failed:            i % 3,
			Completed:         i % 6,
			Embedding:         emb,
			Missing:           i % 9,
			TopPriority:       float64(i%4) * 2.5,
			Career:            cats[i%len(cats)],
			MissingByPriority: []string{"docker", fmt.Sprintf("skill%d", i%4)},
		}
	}
	return members
}

func TestEngine_RunCoversPopulation(t *testing.T) {
	members := population(40)
	res, err := NewEngine(&Config{ProjectionComponents: 4}, nil).Run(context.Background(), members)
	require.NoError(t, err)

	require.Len(t, res.Assignments, 40)
	labelByCluster := map[int]string{}
	for _, a := range res.Assignments {
		if l, ok := labelByCluster[a.ClusterID]; ok {
			assert.Equal(t, l, a.Label, "cluster %d has two labels", a.ClusterID)
		}
		labelByCluster[a.ClusterID] = a.Label
	}

	seen := map[string]int{}
	for _, p := range res.Profiles {
		for _, id := range p.Members {
			seen[id]++
		}
	}
	assert.Len(t, seen, 40)
	for id, n := range seen {
		assert.Equal(t, 1, n, "student %s in %d clusters", id, n)
	}

	require.Len(t, res.Network, 40)
	for _, e := range res.Network {
		assert.Len(t, e.Similar, 10)
	}
	assert.GreaterOrEqual(t, res.Quality.Silhouette, -1.0)
	assert.LessOrEqual(t, res.Quality.Silhouette, 1.0)
	assert.Len(t, res.Features[0], 4+4+2+len(career.Categories()))
}

func TestEngine_SameSeedSameAssignments(t *testing.T) {
	members := population(30)
	a, err := NewEngine(nil, nil).Run(context.Background(), members)
	require.NoError(t, err)
	b, err := NewEngine(nil, nil).Run(context.Background(), members)
	require.NoError(t, err)
	assert.Equal(t, a.Assignments, b.Assignments)
	assert.Equal(t, a.Network, b.Network)
}

func TestEngine_EmptyPopulation(t *testing.T) {
	res, err := NewEngine(nil, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Assignments)
	assert.Empty(t, res.Profiles)
	assert.Empty(t, res.Network)
}
