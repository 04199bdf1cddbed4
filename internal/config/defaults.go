package config

import (
	"github.com/hyperjump/careermatch/internal/cluster"
	"github.com/hyperjump/careermatch/internal/gap"
	"github.com/hyperjump/careermatch/internal/ranking"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/careermatch/data/db/results.db"
	}
	if cfg.Storage.CatalogIndexPath == "" {
		cfg.Storage.CatalogIndexPath = "/usr/local/var/careermatch/data/indices/catalog"
	}
	if cfg.Input.SkillSeparator == "" {
		cfg.Input.SkillSeparator = ";"
	}
	if cfg.Input.Extensions == nil {
		cfg.Input.Extensions = []string{".csv", ".xlsx", ".bin"}
	}
	if cfg.Input.DebounceMillis == 0 {
		cfg.Input.DebounceMillis = 500
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Matching.TopKJobs == 0 {
		cfg.Matching.TopKJobs = gap.DefaultTopK
	}
	if cfg.Recommend == nil {
		cfg.Recommend = ranking.DefaultRankingConfig()
	} else {
		cfg.Recommend.ApplyDefaults()
	}
	if cfg.Cluster == nil {
		cfg.Cluster = cluster.DefaultConfig()
	} else {
		cfg.Cluster.ApplyDefaults()
	}
}
