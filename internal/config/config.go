// Package config loads and validates pagearchiver configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Store   StoreConfig   `mapstructure:"store"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Run     RunConfig     `mapstructure:"run"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig locates the URL list file.
type SourceConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig controls where and how page files are written.
type StoreConfig struct {
	Dir      string `mapstructure:"dir"`
	PadWidth int    `mapstructure:"pad_width"`
}

// LedgerConfig locates the progress ledger file.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// HTTPConfig governs the single-attempt fetch behavior.
type HTTPConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RunConfig holds orchestrator pacing knobs.
type RunConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// MetricsConfig optionally exposes Prometheus metrics while a run is in
// flight. An empty listen_addr disables the listener.
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// LoggingConfig toggles zap development features and the optional log file.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAGEARCHIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.path", "urls_list.txt")
	v.SetDefault("store.dir", "pages")
	v.SetDefault("store.pad_width", 3)
	v.SetDefault("ledger.path", "index.txt")
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("run.delay", "500ms")
	v.SetDefault("metrics.listen_addr", "")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.file", "crawler.log")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source.path must be set")
	}
	if c.Store.Dir == "" {
		return fmt.Errorf("store.dir must be set")
	}
	if c.Store.PadWidth <= 0 {
		return fmt.Errorf("store.pad_width must be > 0")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must be set")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.Run.Delay < 0 {
		return fmt.Errorf("run.delay must be >= 0")
	}
	return nil
}
