package realm

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_realm.go -package=mocks

// Source はレルム設定の取得元を定義する
type Source interface {
	// ListRealms は定義済みレルム名の一覧を返す
	ListRealms(ctx context.Context) ([]string, error)

	// LoadRealm はレルム設定（NAS定義を除く）を読み込む
	// （未定義の場合はErrRealmNotFound）
	LoadRealm(ctx context.Context, name string) (*Config, error)

	// LoadClients はレルムのNAS定義（IPアドレス → 個別シークレット）を読み込む
	LoadClients(ctx context.Context, name string) (map[string]string, error)
}
