package auth

import "errors"

// プロトコル選択エラー
var (
	// ErrNoProtocolMatched は資格情報属性を持つプロトコルが1つも無い場合のエラー
	ErrNoProtocolMatched = errors.New("no authentication protocol matched")

	// ErrAmbiguousProtocol は複数プロトコルの必須属性が同時に存在する場合のエラー。
	// 競合する資格情報の提示は拒否する。
	ErrAmbiguousProtocol = errors.New("ambiguous authentication protocol")
)

// 資格情報デコードエラー
var (
	// ErrMissingCredential は必須の資格情報属性が欠けている場合のエラー
	ErrMissingCredential = errors.New("credential attribute missing")

	// ErrInvalidCredential は資格情報属性の形式が不正な場合のエラー
	ErrInvalidCredential = errors.New("credential attribute invalid")
)
