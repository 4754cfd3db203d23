package directory

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_directory.go -package=mocks

// DirectoryClient はアイデンティティストアとの通信インターフェースを定義する
type DirectoryClient interface {
	// LookupUser はレルム内のユーザーをユーザー名で検索する
	LookupUser(ctx context.Context, realm, username string) (*User, error)

	// StoredCredentials はユーザーの保存済み資格情報値を取得する
	StoredCredentials(ctx context.Context, realm, userID, credType string) ([]string, error)

	// Probe はレルムのディレクトリ接続を確認する
	Probe(ctx context.Context, realm string) error
}
