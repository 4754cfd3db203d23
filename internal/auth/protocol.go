// Package auth は認証プロトコルのディスパッチと検証を提供する。
// 対応プロトコル: PAP、CHAP、MS-CHAP v1、MS-CHAP v2。
package auth

import (
	"layeh.com/radius"
)

// プロトコル名。レルム設定の有効プロトコル集合と対応する。
const (
	ProtocolPAP      = "pap"
	ProtocolCHAP     = "chap"
	ProtocolMSCHAPV1 = "mschapv1"
	ProtocolMSCHAPV2 = "mschapv2"
)

// Credential はリクエストからデコードされた資格情報。
// プロトコルごとに使用するフィールドが異なる。
type Credential struct {
	Protocol string
	Username string

	// PAP: 復号済み平文パスワード
	Password string

	// CHAP: ident + チャレンジ + ダイジェスト
	ChapIdent     byte
	ChapChallenge []byte
	ChapResponse  []byte

	// MS-CHAP v1/v2: チャレンジとレスポンス素材
	MSIdent         byte
	MSChallenge     []byte
	MSPeerChallenge []byte
	MSNTResponse    []byte
}

// Protocol は認証プロトコル1種の実装を表す。
// Verifyは外部と通信せず、取得済みの参照シークレット群との照合のみを行う。
// 照合に成功した場合は一致したシークレットを返す（セッションノート発行に使う）。
type Protocol interface {
	// Name はプロトコル名を返す
	Name() string

	// Match はこのプロトコルの必須属性がパケットに揃っているかを返す
	Match(p *radius.Packet) bool

	// DecodeCredential はパケットから資格情報を取り出す
	DecodeCredential(p *radius.Packet) (*Credential, error)

	// Verify は資格情報を参照シークレット群と照合する
	Verify(cred *Credential, refs []string) (matched string, ok bool)

	// BuildReply は応答パケットへプロトコル固有属性を追加する。
	// successに応じて成功属性（ベンダーキー素材等）または失敗属性を付与する。
	BuildReply(resp, req *radius.Packet, secret []byte, cred *Credential, matched string, success bool) error
}
