// Package storage defines the persistence interface for batch run results.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/careermatch/internal/models"
)

// ErrNotFound is returned when a run, student or cluster does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines run result persistence operations.
type Storage interface {
	// Run operations
	SaveRun(ctx context.Context, run *models.RunResult) error
	LatestRun(ctx context.Context) (*models.RunInfo, error)
	GetRun(ctx context.Context, runID string) (*models.RunInfo, error)
	CountRuns(ctx context.Context) (int64, error)

	// Student operations
	GetStudentResult(ctx context.Context, runID, studentID string) (*models.StudentResult, error)
	ListStudentIDs(ctx context.Context, runID string, offset, limit int) ([]string, error)
	CountStudents(ctx context.Context, runID string) (int64, error)

	// Cluster operations
	ListClusters(ctx context.Context, runID string) ([]models.ClusterProfile, error)
	GetCluster(ctx context.Context, runID string, clusterID int) (*models.ClusterProfile, error)

	Close() error
}
