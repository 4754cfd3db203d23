package syncer

import "context"

// ConfigUnit はレルムごとに初期化される設定単位を定義する
type ConfigUnit interface {
	// Name は設定単位の識別名を返す
	Name() string

	// Init は指定レルムの設定を読み込んで反映する。
	// 反映内容が前回から変化した場合はchanged=trueを返す。
	Init(ctx context.Context, realm string) (changed bool, err error)
}

// ConnectionProvider はレルムごとの外部接続を初期化する
type ConnectionProvider interface {
	// Init は指定レルムの接続を確立・確認する
	Init(ctx context.Context, realm string) (changed bool, err error)
}

// ProviderFactory はConnectionProviderの生成を定義する
type ProviderFactory interface {
	// Name はファクトリの識別名を返す
	Name() string

	// Create は同期1回分のConnectionProviderを生成する
	Create(ctx context.Context) (ConnectionProvider, error)
}
