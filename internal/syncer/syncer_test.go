package syncer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/oyaguma3/radius-idp-gateway/internal/mocks"
	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
)

func testRealmConfig(name string) *realm.Config {
	return &realm.Config{
		Name:      name,
		Enabled:   true,
		Secret:    "nas-secret",
		Protocols: map[string]bool{"pap": true},
		ReplyAttrs: map[string]string{
			"Mikrotik-Rate-Limit": "10M/10M",
		},
	}
}

func TestSettingsUnitPublishesAndDetectsChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	store := realm.NewStore()
	unit := NewSettingsUnit(source, store)
	ctx := context.Background()

	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(testRealmConfig("acme"), nil)
	changed, err := unit.Init(ctx, "acme")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !changed {
		t.Error("first load should report changed")
	}
	if _, ok := store.Snapshot("acme"); !ok {
		t.Fatal("snapshot not published")
	}

	// 同一内容の再読み込みは変化なし
	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(testRealmConfig("acme"), nil)
	changed, err = unit.Init(ctx, "acme")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if changed {
		t.Error("identical reload should not report changed")
	}

	// シークレット変更は変化として検出される
	updated := testRealmConfig("acme")
	updated.Secret = "rotated-secret"
	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(updated, nil)
	changed, err = unit.Init(ctx, "acme")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !changed {
		t.Error("secret rotation should report changed")
	}
}

func TestSettingsUnitPreservesClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	store := realm.NewStore()
	ctx := context.Background()

	settings := NewSettingsUnit(source, store)
	clients := NewClientsUnit(source, store)

	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(testRealmConfig("acme"), nil)
	if _, err := settings.Init(ctx, "acme"); err != nil {
		t.Fatal(err)
	}
	source.EXPECT().LoadClients(gomock.Any(), "acme").
		Return(map[string]string{"192.168.1.1": ""}, nil)
	if _, err := clients.Init(ctx, "acme"); err != nil {
		t.Fatal(err)
	}

	// 設定の再読み込みでNAS定義が消えないこと
	updated := testRealmConfig("acme")
	updated.SessionTimeout = 7200
	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(updated, nil)
	if _, err := settings.Init(ctx, "acme"); err != nil {
		t.Fatal(err)
	}

	cfg, _ := store.Snapshot("acme")
	if cfg.SessionTimeout != 7200 {
		t.Errorf("session timeout: got %d, want 7200", cfg.SessionTimeout)
	}
	if _, ok := cfg.SecretForClient("192.168.1.1"); !ok {
		t.Error("clients lost across settings reload")
	}
}

func TestClientsUnitRequiresSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	store := realm.NewStore()
	unit := NewClientsUnit(source, store)

	source.EXPECT().LoadClients(gomock.Any(), "acme").
		Return(map[string]string{"192.168.1.1": ""}, nil)
	_, err := unit.Init(context.Background(), "acme")
	if !errors.Is(err, ErrRealmNotLoaded) {
		t.Errorf("expected ErrRealmNotLoaded, got %v", err)
	}
}

func TestRunIsolatesFailingRealm(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	dir := mocks.NewMockDirectoryClient(ctrl)
	store := realm.NewStore()
	ctx := context.Background()

	source.EXPECT().ListRealms(gomock.Any()).
		Return([]string{"acme", "broken", "globex"}, nil)

	// brokenレルムの読み込みだけが失敗する
	source.EXPECT().LoadRealm(gomock.Any(), "acme").Return(testRealmConfig("acme"), nil)
	source.EXPECT().LoadRealm(gomock.Any(), "broken").
		Return(nil, realm.ErrValkeyUnavailable)
	source.EXPECT().LoadRealm(gomock.Any(), "globex").Return(testRealmConfig("globex"), nil)

	source.EXPECT().LoadClients(gomock.Any(), "acme").Return(map[string]string{}, nil)
	source.EXPECT().LoadClients(gomock.Any(), "broken").Return(map[string]string{}, nil)
	source.EXPECT().LoadClients(gomock.Any(), "globex").Return(map[string]string{}, nil)

	dir.EXPECT().Probe(gomock.Any(), "acme").Return(nil)
	dir.EXPECT().Probe(gomock.Any(), "broken").Return(nil)
	dir.EXPECT().Probe(gomock.Any(), "globex").Return(nil)

	s := New(source)
	s.RegisterUnit(NewSettingsUnit(source, store))
	s.RegisterUnit(NewClientsUnit(source, store))
	s.RegisterFactory(NewProbeFactory(dir))

	report := s.Run(ctx)
	if report.Err != nil {
		t.Fatalf("Run returned enumeration error: %v", report.Err)
	}

	// 失敗はbrokenレルムに閉じ、他の2レルムは反映される
	failed := report.FailedRealms()
	if len(failed) != 1 || !failed["broken"] {
		t.Errorf("failed realms: got %v, want only broken", failed)
	}
	if _, ok := store.Snapshot("acme"); !ok {
		t.Error("acme not published despite broken failing")
	}
	if _, ok := store.Snapshot("globex"); !ok {
		t.Error("globex not published despite broken failing")
	}
	if _, ok := store.Snapshot("broken"); ok {
		t.Error("broken published despite load failure")
	}
}

func TestRunProbeFailureIsRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	dir := mocks.NewMockDirectoryClient(ctrl)
	ctx := context.Background()

	source.EXPECT().ListRealms(gomock.Any()).Return([]string{"acme"}, nil)
	dir.EXPECT().Probe(gomock.Any(), "acme").Return(errors.New("connection refused"))

	s := New(source)
	s.RegisterFactory(NewProbeFactory(dir))

	report := s.Run(ctx)
	failures := report.Failures()
	if len(failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(failures))
	}
	if failures[0].Unit != "directory-probe" || failures[0].Realm != "acme" {
		t.Errorf("failure: got %+v", failures[0])
	}
}

func TestRunListRealmsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)

	source.EXPECT().ListRealms(gomock.Any()).
		Return(nil, realm.ErrValkeyUnavailable)

	s := New(source)
	report := s.Run(context.Background())
	if !errors.Is(report.Err, realm.ErrValkeyUnavailable) {
		t.Errorf("expected enumeration error in report, got %v", report.Err)
	}
	if len(report.Results) != 0 {
		t.Errorf("results should be empty on enumeration failure, got %v", report.Results)
	}
}
