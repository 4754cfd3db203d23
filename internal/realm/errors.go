package realm

import "errors"

var (
	// ErrRealmNotFound は指定されたレルムが存在しない場合のエラー
	ErrRealmNotFound = errors.New("realm not found")

	// ErrValkeyUnavailable はValkeyへの接続が利用不可能な場合のエラー
	ErrValkeyUnavailable = errors.New("valkey unavailable")
)
