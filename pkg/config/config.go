// Package config loads vuegraph settings from a TOML file with environment
// variable overrides. Settings are intentionally few: where to find the
// graph stores and how to cache extraction results.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vuegraph/vuegraph/pkg/errors"
)

// Config holds all vuegraph settings.
type Config struct {
	Neo4j Neo4jConfig `toml:"neo4j"`
	Mongo MongoConfig `toml:"mongo"`
	Cache CacheConfig `toml:"cache"`
}

// Neo4jConfig configures the graph database connection.
type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// MongoConfig configures the archive store connection.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// CacheConfig selects and configures the extraction cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	return Config{
		Neo4j: Neo4jConfig{
			URI:      "bolt://localhost:7687",
			User:     "neo4j",
			Database: "neo4j",
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "vuegraph",
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
	}
}

// Path returns the configuration file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "vuegraph", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfig, err, "unable to determine home directory")
	}
	return filepath.Join(home, ".config", "vuegraph", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, and applies environment overrides last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine; defaults plus environment apply.
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeConfig, err, "unable to read config file")
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeConfig, err, "invalid config file")
		}
	}

	applyEnv(&cfg)

	switch cfg.Cache.Backend {
	case "file", "redis", "none":
	default:
		return cfg, errors.New(errors.ErrCodeUnsupported,
			"unsupported cache backend %q (must be file, redis, or none)", cfg.Cache.Backend)
	}
	return cfg, nil
}

// applyEnv overlays VUEGRAPH_* environment variables onto cfg. Environment
// always wins over the file so credentials can stay out of it.
func applyEnv(cfg *Config) {
	overlay := []struct {
		key  string
		dest *string
	}{
		{"VUEGRAPH_NEO4J_URI", &cfg.Neo4j.URI},
		{"VUEGRAPH_NEO4J_USER", &cfg.Neo4j.User},
		{"VUEGRAPH_NEO4J_PASSWORD", &cfg.Neo4j.Password},
		{"VUEGRAPH_NEO4J_DATABASE", &cfg.Neo4j.Database},
		{"VUEGRAPH_MONGO_URI", &cfg.Mongo.URI},
		{"VUEGRAPH_MONGO_DATABASE", &cfg.Mongo.Database},
		{"VUEGRAPH_CACHE_BACKEND", &cfg.Cache.Backend},
		{"VUEGRAPH_CACHE_DIR", &cfg.Cache.Dir},
		{"VUEGRAPH_REDIS_ADDR", &cfg.Cache.RedisAddr},
	}
	for _, o := range overlay {
		if v := os.Getenv(o.key); v != "" {
			*o.dest = v
		}
	}
}
