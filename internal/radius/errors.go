package radius

import "errors"

// パケット処理エラー
var (
	// ErrMalformedPacket は不正な形式のパケットを受信した場合のエラー。
	// このエラーのパケットには応答してはならない。
	ErrMalformedPacket = errors.New("malformed radius packet")

	// ErrMissingMessageAuthenticator はMessage-Authenticator属性が見つからない場合のエラー
	ErrMissingMessageAuthenticator = errors.New("message authenticator not found")

	// ErrInvalidMessageAuthenticator はMessage-Authenticator属性の検証に失敗した場合のエラー
	ErrInvalidMessageAuthenticator = errors.New("message authenticator verification failed")
)
