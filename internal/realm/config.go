// Package realm はレルム（テナント）ごとの認証設定を管理する。
// 設定は不変スナップショットとして保持し、同期タスクがアトミックに差し替える。
package realm

import "strings"

// Config はレルムの認証設定スナップショットを表す。
// 生成後に変更してはならない。更新時は新しいスナップショットを
// Store.Putで差し替える。
type Config struct {
	// Name はレルム識別子
	Name string

	// Enabled がfalseのレルム宛リクエストはすべて拒否される
	Enabled bool

	// Secret はこのレルムのNASと共有するRADIUSシークレット
	Secret string

	// Protocols は有効な認証プロトコル名の集合（空の場合はすべて無効）
	Protocols map[string]bool

	// SessionTimeout はAccess-Acceptに付与するSession-Timeout秒数（0で付与しない）
	SessionTimeout uint32

	// ReplyAttrs はAccess-Acceptに付与する追加属性（辞書上の属性名 → 値）
	ReplyAttrs map[string]string

	// Clients はこのレルムに属するNAS（IPアドレス → 個別シークレット、
	// 空文字列の場合はレルム共通のSecretを使う）
	Clients map[string]string
}

// ProtocolAllowed は指定プロトコルがこのレルムで有効かを返す。
func (c *Config) ProtocolAllowed(name string) bool {
	return c.Protocols[name]
}

// SecretForClient は指定NASのシークレットを返す。
// 未登録のNASの場合は("", false)を返す。
func (c *Config) SecretForClient(ip string) (string, bool) {
	secret, ok := c.Clients[ip]
	if !ok {
		return "", false
	}
	if secret == "" {
		return c.Secret, true
	}
	return secret, true
}

// parseProtocols はカンマ区切りのプロトコル名リストを集合に変換する。
func parseProtocols(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name != "" {
			set[name] = true
		}
	}
	return set
}
