package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/pipeline"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.View.OutRadius != pipeline.DefaultOutRadius {
		t.Errorf("OutRadius = %d, want %d", cfg.View.OutRadius, pipeline.DefaultOutRadius)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
data_dir = "/srv/graphs"

[view]
out_radius = 2
layout = "community"

[cache]
backend = "redis"
redis_addr = "redis:6379"

[serve]
addr = ":9000"

[store]
source = "mongo"
mongo_uri = "mongodb://db:27017"
mongo_db = "graphs"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != "/srv/graphs" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.View.OutRadius != 2 {
		t.Errorf("OutRadius = %d, want 2", cfg.View.OutRadius)
	}
	// Unset values keep their defaults.
	if cfg.View.InRadius != pipeline.DefaultInRadius {
		t.Errorf("InRadius = %d, want default %d", cfg.View.InRadius, pipeline.DefaultInRadius)
	}
	if cfg.View.Layout != "community" {
		t.Errorf("Layout = %q", cfg.View.Layout)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Serve.Addr)
	}
	if cfg.Store.Source != sourceMongo || cfg.Store.MongoURI != "mongodb://db:27017" || cfg.Store.MongoDB != "graphs" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadConfigBadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\nsource = \"postgres\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidParameter {
		t.Errorf("err = %v, want INVALID_PARAMETER", err)
	}
}

func TestLoadConfigBadBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidParameter {
		t.Errorf("err = %v, want INVALID_PARAMETER", err)
	}
}

func TestLoadConfigBadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view]\nlayout = \"circular\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidLayout {
		t.Errorf("err = %v, want INVALID_LAYOUT", err)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
