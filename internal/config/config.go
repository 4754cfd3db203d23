package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// ディレクトリ（IdP）API設定
	DirectoryAPIURL string `envconfig:"DIRECTORY_API_URL" required:"true"`

	// RADIUS設定
	RadiusSecret string `envconfig:"RADIUS_SECRET"`
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":1812"`

	// レルム設定同期間隔（秒）
	SyncIntervalSec int `envconfig:"SYNC_INTERVAL_SEC" default:"60"`

	// ログ設定
	LogMaskUsername bool `envconfig:"LOG_MASK_USERNAME" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// SyncInterval はレルム設定同期ジョブの実行間隔を返す
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSec) * time.Second
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !strings.HasPrefix(c.DirectoryAPIURL, "http://") && !strings.HasPrefix(c.DirectoryAPIURL, "https://") {
		return fmt.Errorf("DIRECTORY_API_URL must start with http:// or https://")
	}
	if c.SyncIntervalSec <= 0 {
		return fmt.Errorf("SYNC_INTERVAL_SEC must be positive")
	}
	return nil
}
