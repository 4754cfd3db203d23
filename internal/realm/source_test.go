package realm

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/oyaguma3/radius-idp-gateway/internal/config"
	"github.com/oyaguma3/radius-idp-gateway/internal/session"
)

func newTestSource(t *testing.T) (Source, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, _ := splitHostPort(mr.Addr())
	vc, err := session.NewValkeyClient(&config.Config{
		RedisHost: host,
		RedisPort: port,
	})
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { vc.Close() })
	return NewValkeySource(vc), mr
}

func splitHostPort(addr string) (host, port string, ok bool) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:], true
		}
	}
	return "", "", false
}

func seedRealm(mr *miniredis.Miniredis, name string) {
	mr.SAdd(KeyRealmSet, name)
	mr.HSet(KeyPrefixRealm+name, "enabled", "true")
	mr.HSet(KeyPrefixRealm+name, "secret", "nas-secret")
	mr.HSet(KeyPrefixRealm+name, "protocols", "pap,mschapv2")
	mr.HSet(KeyPrefixRealm+name, "session_timeout", "3600")
	mr.HSet(KeyPrefixRealm+name+KeySuffixRealmAttrs, "Mikrotik-Rate-Limit", "10M/10M")
	mr.HSet(KeyPrefixRealm+name+KeySuffixRealmClient, "192.168.1.1", "")
}

func TestListRealms(t *testing.T) {
	src, mr := newTestSource(t)
	seedRealm(mr, "acme")
	seedRealm(mr, "globex")

	names, err := src.ListRealms(context.Background())
	if err != nil {
		t.Fatalf("ListRealms failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("realms: got %v, want 2 names", names)
	}
}

func TestLoadRealm(t *testing.T) {
	src, mr := newTestSource(t)
	seedRealm(mr, "acme")

	cfg, err := src.LoadRealm(context.Background(), "acme")
	if err != nil {
		t.Fatalf("LoadRealm failed: %v", err)
	}
	if !cfg.Enabled {
		t.Error("expected enabled realm")
	}
	if cfg.Secret != "nas-secret" {
		t.Errorf("secret: got %s", cfg.Secret)
	}
	if !cfg.ProtocolAllowed("pap") || cfg.ProtocolAllowed("chap") {
		t.Errorf("protocols: got %v", cfg.Protocols)
	}
	if cfg.SessionTimeout != 3600 {
		t.Errorf("session timeout: got %d, want 3600", cfg.SessionTimeout)
	}
	if cfg.ReplyAttrs["Mikrotik-Rate-Limit"] != "10M/10M" {
		t.Errorf("reply attrs: got %v", cfg.ReplyAttrs)
	}
}

func TestLoadClients(t *testing.T) {
	src, mr := newTestSource(t)
	seedRealm(mr, "acme")

	clients, err := src.LoadClients(context.Background(), "acme")
	if err != nil {
		t.Fatalf("LoadClients failed: %v", err)
	}
	if _, ok := clients["192.168.1.1"]; !ok {
		t.Errorf("clients: got %v, want 192.168.1.1 entry", clients)
	}
}

func TestLoadRealmNotFound(t *testing.T) {
	src, _ := newTestSource(t)
	_, err := src.LoadRealm(context.Background(), "missing")
	if !errors.Is(err, ErrRealmNotFound) {
		t.Errorf("expected ErrRealmNotFound, got %v", err)
	}
}

func TestLoadRealmInvalidSessionTimeout(t *testing.T) {
	src, mr := newTestSource(t)
	seedRealm(mr, "acme")
	mr.HSet(KeyPrefixRealm+"acme", "session_timeout", "not-a-number")

	if _, err := src.LoadRealm(context.Background(), "acme"); err == nil {
		t.Error("expected error for invalid session_timeout")
	}
}
