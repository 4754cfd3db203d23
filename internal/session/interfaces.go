package session

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_session.go -package=mocks

// SessionStore は認証セッションデータへのアクセスを定義する
type SessionStore interface {
	// Create は認証成功時のセッションを登録する（IDが空の場合は採番する）
	Create(ctx context.Context, sess *Session) error
	// Get はセッション情報を取得する
	Get(ctx context.Context, id string) (*Session, error)
	// SessionsFor はレルム内ユーザーのアクティブセッションID一覧を返す
	SessionsFor(ctx context.Context, realm, username string) ([]string, error)
	// Delete はセッションと索引エントリを削除する
	Delete(ctx context.Context, id string) error
	// PutNote はセッションノートを保存する
	PutNote(ctx context.Context, id, name, value string) error
	// GetNote はセッションノートを取得する
	GetNote(ctx context.Context, id, name string) (string, error)
	// NotesFor はレルム内ユーザーの全アクティブセッションの同名ノート値を返す
	NotesFor(ctx context.Context, realm, username, name string) ([]string, error)
}
