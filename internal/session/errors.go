package session

import "errors"

var (
	// ErrValkeyUnavailable はValkeyへの接続が利用不可能な場合のエラー
	ErrValkeyUnavailable = errors.New("valkey unavailable")

	// ErrSessionNotFound は指定されたセッションが存在しない場合のエラー
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoteNotFound は指定されたセッションノートが存在しない場合のエラー
	ErrNoteNotFound = errors.New("session note not found")
)
