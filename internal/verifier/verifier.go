// Package verifier は参照シークレットの収集を担う。
// ディレクトリの保存済み資格情報と、ロールを持つユーザーの
// セッション払い出しパスワードを照合候補として束ねる。
package verifier

import (
	"context"
	"log/slog"

	"github.com/oyaguma3/radius-idp-gateway/internal/config"
	"github.com/oyaguma3/radius-idp-gateway/internal/directory"
	"github.com/oyaguma3/radius-idp-gateway/internal/session"
)

// Verifier は参照シークレットの収集実装。
type Verifier struct {
	directory directory.DirectoryClient
	sessions  session.SessionStore
}

// New は新しいVerifierを生成する。
func New(dir directory.DirectoryClient, sessions session.SessionStore) *Verifier {
	return &Verifier{directory: dir, sessions: sessions}
}

// ReferenceSecrets はユーザーの照合候補となるシークレット一覧を返す。
// ディレクトリ取得に失敗した場合はエラーを返し、呼び出し側は拒否する
// （フェイルクローズ）。セッションノートの取得失敗は候補の縮小として
// 扱い、ディレクトリ由来の候補だけで照合を続行する。
func (v *Verifier) ReferenceSecrets(ctx context.Context, realmName string, user *directory.User) ([]string, error) {
	secrets, err := v.directory.StoredCredentials(ctx, realmName, user.ID, config.RadiusCredentialType)
	if err != nil {
		return nil, err
	}

	if user.HasRole(directory.RoleReadSessionPassword) {
		notes, err := v.sessions.NotesFor(ctx, realmName, user.Username, session.NoteSessionPassword)
		if err != nil {
			slog.Warn("セッションノート取得失敗",
				"event_id", "VERIFY_NOTE_ERR",
				"realm", realmName,
				"error", err.Error(),
			)
		} else {
			secrets = append(secrets, notes...)
		}
	}

	return secrets, nil
}
