package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// ディレクトリAPI接続設定
const (
	DirectoryConnectTimeout = 2 * time.Second
	DirectoryRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "directory-api"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// セッション管理
const (
	SessionTTL = 24 * time.Hour
)

// RADIUS資格情報タイプ（ディレクトリ側の保存種別）
const (
	RadiusCredentialType = "radius"
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
