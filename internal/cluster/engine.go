package cluster

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/career"
	"github.com/hyperjump/careermatch/internal/models"
)

// Result is the clustering output for one population.
type Result struct {
	Assignments []models.ClusterAssignment
	Profiles    []models.ClusterProfile
	Network     []models.SimilarityEdge
	Quality     models.ClusterQuality
	// Fitted parameters, kept for inspection.
	Projection   *Projection
	Standardizer *Standardizer
	Features     [][]float64
}

// Engine runs the full clustering stage.
type Engine struct {
	config *Config
	logger *zap.Logger
}

// NewEngine creates an engine. A nil config uses defaults.
func NewEngine(config *Config, logger *zap.Logger) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{config: config, logger: logger}
}

// Config returns the effective configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Run projects, standardizes and partitions members, then labels and
// profiles the clusters and builds the similarity network.
func (e *Engine) Run(ctx context.Context, members []Member) (*Result, error) {
	start := time.Now()
	cfg := e.config

	embeddings := make([][]float32, len(members))
	careers := make([]career.Category, len(members))
	ids := make([]string, len(members))
	for i, m := range members {
		embeddings[i] = m.Embedding
		careers[i] = m.Career
		ids[i] = m.ID
	}

	proj := FitProjection(embeddings, cfg.ProjectionComponents, cfg.Seed)
	raw := AssembleFeatures(members, proj)
	std := FitStandardizer(raw)
	features := std.Transform(raw)
	e.logger.Debug("features assembled",
		zap.Int("members", len(members)),
		zap.Int("components", len(proj.Components)),
		zap.Duration("elapsed", time.Since(start)))

	km, err := KMeans(ctx, features, cfg.Clusters, cfg.Restarts, cfg.MaxIterations, cfg.Tolerance, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	k := len(km.Centroids)
	names := Label(km.Labels, careers, k)

	res := &Result{
		Assignments:  make([]models.ClusterAssignment, len(members)),
		Projection:   proj,
		Standardizer: std,
		Features:     features,
	}
	for i, l := range km.Labels {
		res.Assignments[i] = models.ClusterAssignment{
			StudentID: ids[i],
			ClusterID: l,
			Label:     names[l].String(),
		}
	}
	res.Profiles = Profiles(members, km.Labels, names, cfg.MemberSkillCap, cfg.ProfileTopSkills)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Network, err = Network(ids, features, cfg.Neighbors)
	if err != nil {
		return nil, fmt.Errorf("similarity network: %w", err)
	}

	res.Quality = models.ClusterQuality{
		Silhouette:    Silhouette(features, km.Labels, k),
		DaviesBouldin: DaviesBouldin(features, km.Labels, km.Centroids),
		Inertia:       km.Inertia,
	}
	e.logger.Info("clustering complete",
		zap.Int("members", len(members)),
		zap.Int("clusters", k),
		zap.Int("iterations", km.Iterations),
		zap.Float64("silhouette", res.Quality.Silhouette),
		zap.Float64("davies_bouldin", res.Quality.DaviesBouldin),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
