// Package config は取り込みジョブのYAML設定を読み込みます。
// プロバイダーごとの有効/無効とAPIキー、レートリミットを1ファイルで管理し、
// 環境変数での上書きを許します。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const (
	// EnvKeyConfigPath は設定ファイルのパスを指定する環境変数です。
	EnvKeyConfigPath = "CONFIG_PATH"
	// defaultPath は設定ファイルのデフォルトパスです。
	defaultPath = "config.yaml"
)

// RateLimitConfig は外部APIへのリクエストのレートリミット設定です。
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Window はレートリミットのウィンドウ幅を返します。
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// ProviderConfig は企業情報プロバイダー1つ分の設定です。
// APIKeyとBaseURLが空の場合、各プロバイダーの環境変数の値を使います。
type ProviderConfig struct {
	Enabled *bool  `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// IngestConfig は取り込みジョブの設定です。
type IngestConfig struct {
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
	MaxSymbols int             `yaml:"max_symbols"`
}

// Config はアプリケーション設定のルートです。
type Config struct {
	Ingest    IngestConfig              `yaml:"ingest"`
	Providers map[string]ProviderConfig `yaml:"providers"`
}

// defaults は設定ファイルが無い・項目が省略された場合の既定値を適用します。
func (c *Config) defaults() {
	if c.Ingest.RateLimit.Requests <= 0 {
		c.Ingest.RateLimit.Requests = 5
	}
	if c.Ingest.RateLimit.WindowSeconds <= 0 {
		c.Ingest.RateLimit.WindowSeconds = 60
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
}

// ProviderEnabled はプロバイダーが有効かどうかを返します。
// 設定に書かれていないプロバイダーは有効とみなします。
func (c *Config) ProviderEnabled(name string) bool {
	p, ok := c.Providers[name]
	if !ok || p.Enabled == nil {
		return true
	}
	return *p.Enabled
}

// Load は指定されたパスのYAML設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.defaults()
	return &cfg, nil
}

// LoadFromEnv はCONFIG_PATH（未設定時はconfig.yaml）から設定を読み込みます。
// ファイルが存在しない場合は既定値で動作します。
func LoadFromEnv() *Config {
	path := os.Getenv(EnvKeyConfigPath)
	if path == "" {
		path = defaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		slog.Warn("config file not loaded, using defaults", "path", path, "error", err)
		cfg = &Config{}
		cfg.defaults()
	}
	return cfg
}
