// Package config provides configuration loading and structs for careermatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/careermatch/internal/cluster"
	"github.com/hyperjump/careermatch/internal/ingest"
	"github.com/hyperjump/careermatch/internal/pipeline"
	"github.com/hyperjump/careermatch/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool                   `yaml:"debug"`
	Server    ServerConfig           `yaml:"server"`
	Storage   StorageConfig          `yaml:"storage"`
	Input     InputConfig            `yaml:"input"`
	Embedding EmbeddingConfig        `yaml:"embedding"`
	Matching  MatchingConfig         `yaml:"matching"`
	Recommend *ranking.RankingConfig `yaml:"recommend"`
	Cluster   *cluster.Config        `yaml:"cluster"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the result database and the catalog index.
type StorageConfig struct {
	DatabasePath     string `yaml:"database_path"`
	CatalogIndexPath string `yaml:"catalog_index_path"`
}

// InputConfig names the record and embedding files of a population snapshot.
// File names are resolved against Directory.
type InputConfig struct {
	Directory         string   `yaml:"directory"`
	Students          string   `yaml:"students"`
	Jobs              string   `yaml:"jobs"`
	Courses           string   `yaml:"courses"`
	StudentEmbeddings string   `yaml:"student_embeddings"`
	JobEmbeddings     string   `yaml:"job_embeddings"`
	CourseEmbeddings  string   `yaml:"course_embeddings"`
	SkillSeparator    string   `yaml:"skill_separator"`
	Extensions        []string `yaml:"extensions"`
	// DebounceMillis is the quiet period the watcher waits before re-running.
	DebounceMillis int `yaml:"debounce_ms"`
}

// EmbeddingConfig describes the externally produced embeddings.
type EmbeddingConfig struct {
	Dimensions int `yaml:"dimensions"`
}

// MatchingConfig holds job matching settings.
type MatchingConfig struct {
	TopKJobs int `yaml:"top_k_jobs"`
	// Workers bounds per-student fan-out; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// Sources returns the ingestion sources described by the input section.
func (c *Config) Sources() ingest.Sources {
	return ingest.Sources{
		Directory:         c.Input.Directory,
		Students:          c.Input.Students,
		Jobs:              c.Input.Jobs,
		Courses:           c.Input.Courses,
		StudentEmbeddings: c.Input.StudentEmbeddings,
		JobEmbeddings:     c.Input.JobEmbeddings,
		CourseEmbeddings:  c.Input.CourseEmbeddings,
		Separator:         c.Input.SkillSeparator,
		Dimensions:        c.Embedding.Dimensions,
	}
}

// PipelineConfig returns the batch engine settings.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Dimensions: c.Embedding.Dimensions,
		TopKJobs:   c.Matching.TopKJobs,
		Workers:    c.Matching.Workers,
		Ranking:    c.Recommend,
		Cluster:    c.Cluster,
	}
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.CatalogIndexPath = expandPath(cfg.Storage.CatalogIndexPath, configDir)
	if cfg.Input.Directory != "" {
		cfg.Input.Directory = expandPath(cfg.Input.Directory, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
