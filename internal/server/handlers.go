package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/catalog"
	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/storage"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runs, err := s.storage.CountRuns(ctx)
	if err != nil {
		s.logger.Error("status: count runs failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"runs": runs,
	}

	latest, err := s.storage.LatestRun(ctx)
	switch {
	case err == nil:
		resp["latest_run"] = latest
	case !errors.Is(err, storage.ErrNotFound):
		s.logger.Error("status: latest run failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.catalog != nil {
		if n, err := s.catalog.DocCount(); err == nil {
			resp["catalog_entries"] = n
		}
	}

	if s.config != nil {
		resp["config"] = map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"top_k_jobs":           s.config.Matching.TopKJobs,
			"clusters":             s.config.Cluster.Clusters,
			"seed":                 s.config.Cluster.Seed,
			"database_path":        s.config.Storage.DatabasePath,
			"catalog_index_path":   s.config.Storage.CatalogIndexPath,
		}
		diskBytes, err := storage.DiskUsageBytes(
			s.config.Storage.DatabasePath,
			s.config.Storage.CatalogIndexPath,
		)
		if err == nil {
			resp["disk_usage_bytes"] = diskBytes
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

type studentPage struct {
	RunID    string   `json:"run_id"`
	Total    int64    `json:"total"`
	Offset   int      `json:"offset"`
	Limit    int      `json:"limit"`
	Students []string `json:"students"`
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	offset, ok := s.intParam(w, r, "offset", 0)
	if !ok {
		return
	}
	limit, ok := s.intParam(w, r, "limit", defaultPageSize)
	if !ok {
		return
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	run, ok := s.latestRun(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	total, err := s.storage.CountStudents(ctx, run.ID)
	if err != nil {
		s.logger.Error("count students failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ids, err := s.storage.ListStudentIDs(ctx, run.ID, offset, limit)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, studentPage{
		RunID:    run.ID,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
		Students: ids,
	})
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	result, ok := s.studentResult(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimilarStudents(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	result, ok := s.studentResult(w, r)
	if !ok {
		return
	}
	similar := result.SimilarStudentIDs
	if similar == nil {
		similar = []string{}
	}
	if limit > 0 && limit < len(similar) {
		similar = similar[:limit]
	}
	s.respondJSON(w, http.StatusOK, models.SimilarityEdge{
		StudentID: result.StudentID,
		Similar:   similar,
	})
}

func (s *Server) handleListClusters(w http.ResponseWriter, r *http.Request) {
	run, ok := s.latestRun(w, r)
	if !ok {
		return
	}
	clusters, err := s.storage.ListClusters(r.Context(), run.ID)
	if err != nil {
		s.logger.Error("list clusters failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   run.ID,
		"quality":  run.Quality,
		"clusters": clusters,
	})
}

func (s *Server) handleGetCluster(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid cluster id")
		return
	}
	run, ok := s.latestRun(w, r)
	if !ok {
		return
	}
	profile, err := s.storage.GetCluster(r.Context(), run.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "cluster not found")
			return
		}
		s.logger.Error("get cluster failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

type catalogResponse struct {
	Query      string        `json:"query"`
	Kind       catalog.Kind  `json:"kind,omitempty"`
	Hits       []catalog.Hit `json:"hits"`
	Suggestion string        `json:"suggestion,omitempty"`
}

func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		s.respondError(w, http.StatusNotImplemented, "catalog not enabled")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	kind, err := catalog.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, ok := s.intParam(w, r, "limit", catalog.DefaultLimit)
	if !ok {
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	fuzzy := r.URL.Query().Get("fuzzy") == "true"

	s.logger.Debug("catalog search request", zap.String("query", q), zap.String("kind", string(kind)), zap.Int("limit", limit), zap.Bool("fuzzy", fuzzy))
	hits, suggestion, err := catalog.Lookup(r.Context(), s.catalog, s.suggester, q, kind, limit, fuzzy)
	if err != nil {
		s.logger.Error("catalog search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := catalogResponse{Query: q, Kind: kind, Hits: hits, Suggestion: suggestion}
	s.respondJSON(w, http.StatusOK, resp)
}

// latestRun writes a 404 and returns false when no run is stored.
func (s *Server) latestRun(w http.ResponseWriter, r *http.Request) (*models.RunInfo, bool) {
	run, err := s.storage.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "no runs stored")
			return nil, false
		}
		s.logger.Error("latest run failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return run, true
}

func (s *Server) studentResult(w http.ResponseWriter, r *http.Request) (*models.StudentResult, bool) {
	run, ok := s.latestRun(w, r)
	if !ok {
		return nil, false
	}
	id := chi.URLParam(r, "id")
	result, err := s.storage.GetStudentResult(r.Context(), run.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "student not found")
			return nil, false
		}
		s.logger.Error("get student failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return result, true
}

// intParam reads a non-negative integer query parameter, writing a 400 on
// malformed input.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		s.respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
