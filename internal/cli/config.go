package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/pipeline"
	"github.com/egoview/egoview/pkg/view"
)

// Cache backends selectable in the config file.
const (
	cacheBackendFile   = "file"
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"
	cacheBackendOff    = "off"
)

// Graph sources selectable for the serve command.
const (
	sourceDir   = "dir"
	sourceMongo = "mongo"
)

// configFileName is the config file looked up under the config directory.
const configFileName = "config.toml"

// Config holds the user-level defaults read from the TOML config file.
// Command-line flags take precedence over config values.
type Config struct {
	// DataDir is the directory the serve and explore commands read graph
	// files from.
	DataDir string `toml:"data_dir"`

	View  ViewConfig  `toml:"view"`
	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
	Store StoreConfig `toml:"store"`
}

// ViewConfig sets defaults for view parameters.
type ViewConfig struct {
	OutRadius int    `toml:"out_radius"`
	InRadius  int    `toml:"in_radius"`
	Layout    string `toml:"layout"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig sets defaults for the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects where the serve command reads graphs from: the data
// directory (dir) or a MongoDB collection (mongo).
type StoreConfig struct {
	Source   string `toml:"source"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "data",
		View: ViewConfig{
			OutRadius: pipeline.DefaultOutRadius,
			InRadius:  pipeline.DefaultInRadius,
			Layout:    pipeline.DefaultLayoutMode,
		},
		Cache: CacheConfig{
			Backend:   cacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Source:   sourceDir,
			MongoURI: "mongodb://localhost:27017",
			MongoDB:  "egoview",
		},
	}
}

// LoadConfig reads a TOML config from path. When path is empty the default
// location (~/.config/egoview/config.toml) is used, and a missing file there
// yields the built-in defaults. An explicit path that does not exist is an
// error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendMemory, cacheBackendRedis, cacheBackendOff:
	default:
		return errors.New(errors.ErrCodeInvalidParameter,
			"unknown cache backend %q (must be file, memory, redis, or off)", c.Cache.Backend)
	}
	switch c.Store.Source {
	case sourceDir, sourceMongo:
	default:
		return errors.New(errors.ErrCodeInvalidParameter,
			"unknown graph source %q (must be dir or mongo)", c.Store.Source)
	}
	if c.View.Layout != "" {
		p := view.Params{Focus: "x", LayoutMode: c.View.Layout}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
