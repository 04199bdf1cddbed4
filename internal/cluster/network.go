package cluster

import (
	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/vector"
)

// Network links every member to its k most similar other members by cosine
// similarity of standardized features.
func Network(ids []string, features [][]float64, k int) ([]models.SimilarityEdge, error) {
	sim, err := vector.Similarity64(features, features)
	if err != nil {
		return nil, err
	}
	edges := make([]models.SimilarityEdge, len(ids))
	for i, id := range ids {
		hits := vector.TopK(sim.Row(i), k, i)
		similar := make([]string, len(hits))
		for h, hit := range hits {
			similar[h] = ids[hit.Index]
		}
		edges[i] = models.SimilarityEdge{StudentID: id, Similar: similar}
	}
	return edges, nil
}
