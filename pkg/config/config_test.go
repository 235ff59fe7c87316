package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vuegraph/vuegraph/pkg/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" {
		t.Errorf("unexpected default URI: %s", cfg.Neo4j.URI)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("unexpected default cache backend: %s", cfg.Cache.Backend)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[neo4j]
uri = "bolt://db.example.com:7687"
user = "admin"
database = "maps"

[cache]
backend = "redis"
redis_addr = "cache.example.com:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Neo4j.URI != "bolt://db.example.com:7687" {
		t.Errorf("URI = %s", cfg.Neo4j.URI)
	}
	if cfg.Neo4j.User != "admin" {
		t.Errorf("User = %s", cfg.Neo4j.User)
	}
	if cfg.Cache.RedisAddr != "cache.example.com:6379" {
		t.Errorf("RedisAddr = %s", cfg.Cache.RedisAddr)
	}
	// Unset sections keep defaults.
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo URI = %s", cfg.Mongo.URI)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadUnsupportedBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported backend")
	}
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VUEGRAPH_NEO4J_PASSWORD", "secret")
	t.Setenv("VUEGRAPH_CACHE_BACKEND", "none")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Neo4j.Password != "secret" {
		t.Errorf("password override not applied")
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("backend override not applied")
	}
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/tmp/xdg/vuegraph/config.toml" {
		t.Errorf("Path = %s", p)
	}
}
