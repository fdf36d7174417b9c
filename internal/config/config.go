// Package config loads server configuration in three layers: struct
// defaults, an optional YAML file, then CROPADVISOR_* environment
// variables, each layer overriding the previous.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rs-patil/cropadvisor/internal/services/recorder"
	"github.com/rs-patil/cropadvisor/pkg/eventbus"
)

// Config is the full server configuration tree.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Engine    EngineConfig    `koanf:"engine"`
	Providers ProvidersConfig `koanf:"providers"`
	Mqtt      MqttConfig      `koanf:"mqtt"`
	Influx    InfluxConfig    `koanf:"influx"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimit       int           `koanf:"rate_limit"`
	RateWindow      time.Duration `koanf:"rate_window"`
}

type EngineConfig struct {
	TopN        int     `koanf:"top_n"`
	MarketSeed  int64   `koanf:"market_seed"`
	DefaultFarm float64 `koanf:"default_farm_size"`
}

type ProvidersConfig struct {
	Timeout         time.Duration `koanf:"timeout"`
	WeatherCacheTTL time.Duration `koanf:"weather_cache_ttl"`
	SoilCacheTTL    time.Duration `koanf:"soil_cache_ttl"`
	GeocodeCacheTTL time.Duration `koanf:"geocode_cache_ttl"`
}

type MqttConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	ClientID string `koanf:"client_id"`
	Topic    string `koanf:"topic"`
}

// Bus converts to the event bus connection config.
func (c MqttConfig) Bus() eventbus.Config {
	return eventbus.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		ClientID: c.ClientID,
		Topic:    c.Topic,
	}
}

type InfluxConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Token   string `koanf:"token"`
	Org     string `koanf:"org"`
	Bucket  string `koanf:"bucket"`
}

// Sink converts to the recorder connection config.
func (c InfluxConfig) Sink() recorder.Config {
	return recorder.Config{URL: c.URL, Token: c.Token, Org: c.Org, Bucket: c.Bucket}
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       100,
			RateWindow:      time.Minute,
		},
		Engine: EngineConfig{
			TopN:        5,
			MarketSeed:  0, // 0 -> time-based seed
			DefaultFarm: 1.0,
		},
		Providers: ProvidersConfig{
			Timeout:         5 * time.Second,
			WeatherCacheTTL: 30 * time.Minute,
			SoilCacheTTL:    24 * time.Hour,
			GeocodeCacheTTL: 24 * time.Hour,
		},
		Mqtt: MqttConfig{
			Host:     "localhost",
			Port:     1883,
			ClientID: "cropadvisor",
			Topic:    "cropadvisor/advisories",
		},
		Influx: InfluxConfig{
			URL:    "http://localhost:8086",
			Org:    "cropadvisor",
			Bucket: "observations",
		},
		Log: LogConfig{Level: "info"},
	}
}

// envPrefix namespaces the environment overrides.
const envPrefix = "CROPADVISOR_"

// Load assembles the configuration. path may be empty; a missing file at
// an explicit path is an error, a missing default file is not.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	// CROPADVISOR_SERVER_PORT -> server.port
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Engine.TopN < 1 {
		return fmt.Errorf("engine.top_n must be at least 1, got %d", c.Engine.TopN)
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive")
	}
	return nil
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
