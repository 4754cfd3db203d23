package engine

import (
	"context"

	"layeh.com/radius"

	"github.com/oyaguma3/radius-idp-gateway/internal/directory"
)

//go:generate mockgen -source=types.go -destination=../mocks/mock_engine.go -package=mocks

// Action は認証処理結果のアクション種別を表す
type Action string

const (
	ActionAccept Action = "ACCEPT"
	ActionReject Action = "REJECT"
	ActionDrop   Action = "DROP"
)

// Request は認証処理への入力を表す
type Request struct {
	TraceID string         // リクエスト追跡用UUID
	SrcIP   string         // 送信元IPアドレス
	Packet  *radius.Packet // パース済みAccess-Request
}

// Result は認証処理の結果を表す
type Result struct {
	Action    Action         // 応答アクション
	Response  *radius.Packet // Accept/Reject時: 応答パケット（Finalize前）
	Realm     string         // 解決されたレルム名
	Username  string         // User-Name属性
	Protocol  string         // 選択された認証プロトコル名
	SessionID string         // Accept時: セッションID
}

// Processor は認証処理のインターフェース
type Processor interface {
	Process(ctx context.Context, req *Request) (*Result, error)
}

// SecretSource は照合候補シークレットの取得インターフェース
type SecretSource interface {
	ReferenceSecrets(ctx context.Context, realmName string, user *directory.User) ([]string, error)
}
