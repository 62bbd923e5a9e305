// Package config loads moneyflow settings.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. an optional TOML file (--config)
//  3. environment variables prefixed MONEYFLOW_, which may come from a
//     .env file in the working directory
//
// Example moneyflow.toml:
//
//	width = 1200
//	height = 800
//	style = "gradient"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "30s"
package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
)

// AppName names the cache directory and the default Mongo database.
const AppName = "moneyflow"

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "MONEYFLOW_"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Width    float64      `toml:"width"`
	Height   float64      `toml:"height"`
	Style    string       `toml:"style"`
	Currency string       `toml:"currency"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP API. Timeouts accept Go duration
// strings ("30s") in TOML and the environment.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:  800,
		Height: 600,
		Style:  graph.StyleSimple,
		Cache: CacheConfig{
			Backend:         BackendFile,
			MongoDatabase:   AppName,
			MongoCollection: "cache",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment. envFiles are loaded into the
// environment first without overriding variables already set; with none
// given, ./.env is tried. Missing .env files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"STYLE":            &cfg.Style,
		"CURRENCY":         &cfg.Currency,
		"CACHE_BACKEND":    &cfg.Cache.Backend,
		"CACHE_DIR":        &cfg.Cache.Dir,
		"REDIS_ADDR":       &cfg.Cache.RedisAddr,
		"REDIS_PASSWORD":   &cfg.Cache.RedisPassword,
		"MONGO_URI":        &cfg.Cache.MongoURI,
		"MONGO_DATABASE":   &cfg.Cache.MongoDatabase,
		"MONGO_COLLECTION": &cfg.Cache.MongoCollection,
		"ADDR":             &cfg.Server.Addr,
	}
	for name, dst := range strs {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	floats := map[string]*float64{"WIDTH": &cfg.Width, "HEIGHT": &cfg.Height}
	for name, dst := range floats {
		if v, ok := lookupEnv(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return envError(name, v, err)
			}
			*dst = f
		}
	}

	if v, ok := lookupEnv("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("REDIS_DB", v, err)
		}
		cfg.Cache.RedisDB = n
	}

	durations := map[string]*time.Duration{
		"READ_TIMEOUT":  &cfg.Server.ReadTimeout,
		"WRITE_TIMEOUT": &cfg.Server.WriteTimeout,
	}
	for name, dst := range durations {
		if v, ok := lookupEnv(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return envError(name, v, err)
			}
			*dst = d
		}
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func envError(name, value string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s=%q", EnvPrefix, name, value)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if _, ok := styles.ByName(c.Style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", c.Style)
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache requires %sREDIS_ADDR", EnvPrefix)
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo cache requires %sMONGO_URI", EnvPrefix)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file, redis or mongo)", c.Cache.Backend)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	return nil
}

// OpenCache constructs the configured cache backend.
func OpenCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			d, err := cache.DefaultDir(AppName)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeCache, err, "resolve cache dir")
			}
			dir = d
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache")
		}
		return c, nil
	case BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil
	case BackendMongo:
		c, err := cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open mongo cache")
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
	}
}
