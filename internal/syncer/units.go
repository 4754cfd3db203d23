package syncer

import (
	"context"
	"errors"
	"maps"

	"github.com/google/uuid"

	"github.com/oyaguma3/radius-idp-gateway/internal/directory"
	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
)

// ErrRealmNotLoaded はレルム本体の読み込み前にNAS定義単位が実行された場合のエラー
var ErrRealmNotLoaded = errors.New("realm settings not loaded")

// settingsUnit はレルム本体（有効フラグ・シークレット・プロトコル・応答属性）を
// 読み込んでStoreに反映する設定単位。NAS定義は前回スナップショットから引き継ぐ。
type settingsUnit struct {
	source realm.Source
	store  *realm.Store
}

// NewSettingsUnit はレルム設定の読み込み単位を生成する。
func NewSettingsUnit(source realm.Source, store *realm.Store) ConfigUnit {
	return &settingsUnit{source: source, store: store}
}

func (u *settingsUnit) Name() string {
	return "realm-settings"
}

func (u *settingsUnit) Init(ctx context.Context, name string) (bool, error) {
	cfg, err := u.source.LoadRealm(ctx, name)
	if err != nil {
		return false, err
	}

	prev, ok := u.store.Snapshot(name)
	if ok {
		cfg.Clients = prev.Clients
		if settingsEqual(prev, cfg) {
			return false, nil
		}
	}
	u.store.Publish(cfg)
	return true, nil
}

// settingsEqual はNAS定義を除く設定フィールドの一致を判定する。
func settingsEqual(a, b *realm.Config) bool {
	return a.Enabled == b.Enabled &&
		a.Secret == b.Secret &&
		a.SessionTimeout == b.SessionTimeout &&
		maps.Equal(a.Protocols, b.Protocols) &&
		maps.Equal(a.ReplyAttrs, b.ReplyAttrs)
}

// clientsUnit はレルムのNAS定義を読み込んで差し替える設定単位。
// settingsUnitの後に実行される前提で、既存スナップショットをコピーして
// NAS定義だけを更新した新スナップショットを発行する。
type clientsUnit struct {
	source realm.Source
	store  *realm.Store
}

// NewClientsUnit はNAS定義の読み込み単位を生成する。
func NewClientsUnit(source realm.Source, store *realm.Store) ConfigUnit {
	return &clientsUnit{source: source, store: store}
}

func (u *clientsUnit) Name() string {
	return "realm-clients"
}

func (u *clientsUnit) Init(ctx context.Context, name string) (bool, error) {
	clients, err := u.source.LoadClients(ctx, name)
	if err != nil {
		return false, err
	}

	prev, ok := u.store.Snapshot(name)
	if !ok {
		return false, ErrRealmNotLoaded
	}
	if maps.Equal(prev.Clients, clients) {
		return false, nil
	}

	next := *prev
	next.Clients = clients
	u.store.Publish(&next)
	return true, nil
}

// ProbeFactory はレルムごとのディレクトリ到達性確認を生成する。
type ProbeFactory struct {
	client directory.DirectoryClient
}

// NewProbeFactory は新しいProbeFactoryを生成する。
func NewProbeFactory(client directory.DirectoryClient) *ProbeFactory {
	return &ProbeFactory{client: client}
}

func (f *ProbeFactory) Name() string {
	return "directory-probe"
}

// Create は同期1回分の接続確認プロバイダを生成する。
func (f *ProbeFactory) Create(ctx context.Context) (ConnectionProvider, error) {
	return &probeProvider{client: f.client}, nil
}

type probeProvider struct {
	client directory.DirectoryClient
}

func (p *probeProvider) Init(ctx context.Context, name string) (bool, error) {
	ctx = directory.WithTraceID(ctx, uuid.NewString())
	return false, p.client.Probe(ctx, name)
}
