package realm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/oyaguma3/radius-idp-gateway/internal/session"
)

// Valkeyキープレフィックス
const (
	KeyRealmSet          = "realms"   // 定義済みレルム名の集合
	KeyPrefixRealm       = "realm:"   // レルム本体ハッシュ
	KeySuffixRealmAttrs  = ":attrs"   // 応答属性ハッシュ
	KeySuffixRealmClient = ":clients" // NAS定義ハッシュ
)

// valkeySource はValkey上のレルム定義を読み込むSource実装。
type valkeySource struct {
	vc *session.ValkeyClient
}

// NewValkeySource は新しいValkeyベースのSourceを生成する。
func NewValkeySource(vc *session.ValkeyClient) Source {
	return &valkeySource{vc: vc}
}

// ListRealms は定義済みレルム名の一覧を返す。
func (s *valkeySource) ListRealms(ctx context.Context) ([]string, error) {
	names, err := s.vc.Client().SMembers(ctx, KeyRealmSet).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return names, nil
}

// LoadRealm はレルム定義からConfigスナップショットを組み立てる。
// NAS定義はLoadClientsで別途読み込む。
func (s *valkeySource) LoadRealm(ctx context.Context, name string) (*Config, error) {
	base, err := s.vc.Client().HGetAll(ctx, KeyPrefixRealm+name).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRealmNotFound, name)
	}

	attrs, err := s.vc.Client().HGetAll(ctx, KeyPrefixRealm+name+KeySuffixRealmAttrs).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}

	cfg := &Config{
		Name:       name,
		Enabled:    base["enabled"] == "true" || base["enabled"] == "1",
		Secret:     base["secret"],
		Protocols:  parseProtocols(base["protocols"]),
		ReplyAttrs: attrs,
	}
	if raw, ok := base["session_timeout"]; ok && raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("realm %s: invalid session_timeout %q: %w", name, raw, err)
		}
		cfg.SessionTimeout = uint32(n)
	}
	return cfg, nil
}

// LoadClients はレルムのNAS定義を読み込む。
func (s *valkeySource) LoadClients(ctx context.Context, name string) (map[string]string, error) {
	clients, err := s.vc.Client().HGetAll(ctx, KeyPrefixRealm+name+KeySuffixRealmClient).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return clients, nil
}
