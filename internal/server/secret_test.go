package server

import (
	"context"
	"net"
	"testing"

	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
)

func testRealmStore() *realm.Store {
	store := realm.NewStore()
	store.Publish(&realm.Config{
		Name:   "acme",
		Secret: "realm-secret",
		Clients: map[string]string{
			"192.0.2.1": "",
			"192.0.2.2": "per-nas-secret",
		},
	})
	return store
}

func udpAddr(ip string) net.Addr {
	return &net.UDPAddr{IP: net.ParseIP(ip), Port: 50000}
}

func TestSecretSourceResolvesFromRealm(t *testing.T) {
	src := NewSecretSource(testRealmStore(), "fallback")
	ctx := context.Background()

	secret, err := src.RADIUSSecret(ctx, udpAddr("192.0.2.1"))
	if err != nil {
		t.Fatalf("RADIUSSecret failed: %v", err)
	}
	if string(secret) != "realm-secret" {
		t.Errorf("secret: got %q, want realm-secret", secret)
	}

	secret, err = src.RADIUSSecret(ctx, udpAddr("192.0.2.2"))
	if err != nil {
		t.Fatalf("RADIUSSecret failed: %v", err)
	}
	if string(secret) != "per-nas-secret" {
		t.Errorf("secret: got %q, want per-nas-secret", secret)
	}
}

func TestSecretSourceFallback(t *testing.T) {
	src := NewSecretSource(testRealmStore(), "fallback")

	secret, err := src.RADIUSSecret(context.Background(), udpAddr("203.0.113.9"))
	if err != nil {
		t.Fatalf("RADIUSSecret failed: %v", err)
	}
	if string(secret) != "fallback" {
		t.Errorf("secret: got %q, want fallback", secret)
	}
}

func TestSecretSourceNoFallbackReturnsNil(t *testing.T) {
	src := NewSecretSource(testRealmStore(), "")

	secret, err := src.RADIUSSecret(context.Background(), udpAddr("203.0.113.9"))
	if err != nil {
		t.Fatalf("RADIUSSecret failed: %v", err)
	}
	if secret != nil {
		t.Errorf("secret: got %q, want nil", secret)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{name: "udp addr", addr: udpAddr("192.0.2.1"), want: "192.0.2.1"},
		{name: "nil addr", addr: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractIP(tt.addr); got != tt.want {
				t.Errorf("extractIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
