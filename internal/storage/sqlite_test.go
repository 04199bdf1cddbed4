package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/careermatch/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(id string, finished time.Time) *models.RunResult {
	return &models.RunResult{
		ID:         id,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Seed:       42,
		Students: []models.StudentResult{
			{
				StudentID:  "s2",
				Department: "IT",
				JobMatches: []models.JobMatch{{JobID: "j1", Title: "Cloud Engineer", Score: 0.9, MatchPercentage: 90}},
				Gap:        models.SkillGapProfile{StudentID: "s2", MissingSkills: []string{"aws"}},
				Cluster:    &models.ClusterAssignment{StudentID: "s2", ClusterID: 1, Label: "Cloud"},
			},
			{StudentID: "s1", Department: "CS"},
			{StudentID: "s3", Department: "CS", Cluster: &models.ClusterAssignment{StudentID: "s3", ClusterID: 0, Label: "Data"}},
		},
		Clusters: []models.ClusterProfile{
			{ClusterID: 1, Label: "Cloud", MemberCount: 1, Members: []string{"s2"}},
			{ClusterID: 0, Label: "Data", MemberCount: 1, Members: []string{"s3"}},
		},
		Quality: models.ClusterQuality{Silhouette: 0.4, DaviesBouldin: 1.2},
		Summary: models.PopulationSummary{TotalStudents: 3},
	}
}

func TestSQLiteStorage_SaveAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := store.SaveRun(ctx, sampleRun("run-1", finished)); err != nil {
		t.Fatal(err)
	}

	info, err := store.LatestRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "run-1" || info.Students != 3 || info.Clusters != 2 || info.Seed != 42 {
		t.Errorf("LatestRun = %+v", info)
	}
	if !info.FinishedAt.Equal(finished) {
		t.Errorf("FinishedAt = %v, want %v", info.FinishedAt, finished)
	}
	if info.Quality.Silhouette != 0.4 || info.Summary.TotalStudents != 3 {
		t.Errorf("payload columns not restored: %+v", info)
	}

	res, err := store.GetStudentResult(ctx, "run-1", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.JobMatches) != 1 || res.JobMatches[0].MatchPercentage != 90 {
		t.Errorf("job matches = %+v", res.JobMatches)
	}
	if res.Cluster == nil || res.Cluster.Label != "Cloud" {
		t.Errorf("cluster = %+v", res.Cluster)
	}

	ids, err := store.ListStudentIDs(ctx, "run-1", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Errorf("ListStudentIDs = %v", ids)
	}
	ids, _ = store.ListStudentIDs(ctx, "run-1", 2, 10)
	if len(ids) != 1 || ids[0] != "s3" {
		t.Errorf("ListStudentIDs page 2 = %v", ids)
	}
	if n, _ := store.CountStudents(ctx, "run-1"); n != 3 {
		t.Errorf("CountStudents = %d", n)
	}

	clusters, err := store.ListClusters(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(clusters) != 2 || clusters[0].ClusterID != 0 || clusters[1].Label != "Cloud" {
		t.Errorf("ListClusters = %+v", clusters)
	}
	c, err := store.GetCluster(ctx, "run-1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if c.Members[0] != "s2" {
		t.Errorf("GetCluster members = %v", c.Members)
	}
}

func TestSQLiteStorage_LatestRunWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, r := range []*models.RunResult{
		sampleRun("old", base),
		sampleRun("new", base.Add(time.Hour)),
	} {
		if err := store.SaveRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	info, err := store.LatestRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "new" {
		t.Errorf("LatestRun = %s, want new", info.ID)
	}
	if n, _ := store.CountRuns(ctx); n != 2 {
		t.Errorf("CountRuns = %d, want 2", n)
	}
	if _, err := store.GetRun(ctx, "old"); err != nil {
		t.Errorf("GetRun(old): %v", err)
	}
}

func TestSQLiteStorage_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.LatestRun(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestRun on empty store: %v", err)
	}
	if err := store.SaveRun(ctx, sampleRun("r", time.Now())); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetStudentResult(ctx, "r", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetStudentResult: %v", err)
	}
	if _, err := store.GetCluster(ctx, "r", 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCluster: %v", err)
	}
	if _, err := store.GetRun(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun: %v", err)
	}
}

func TestSQLiteStorage_DuplicateRunRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("dup", time.Now())
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(ctx, run); err == nil {
		t.Error("expected error saving the same run twice")
	}
	if n, _ := store.CountStudents(ctx, "dup"); n != 3 {
		t.Errorf("failed save must not leave partial rows, got %d students", n)
	}
}
