package radius

import (
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// NewAccessAccept は認証成功応答の骨格を生成する。
// プロトコル固有属性・レルム属性は呼び出し側が追加し、最後にFinalizeで
// Proxy-StateとMessage-Authenticatorを付与する。
func NewAccessAccept(request *radius.Packet) *radius.Packet {
	resp := request.Response(radius.CodeAccessAccept)
	// MS-MPPEキー等のsalt暗号化属性はRequest Authenticatorを鍵素材に使うため、
	// 属性追加前にセットしておく。Response Authenticatorはエンコード時に
	// Request Authenticatorから再計算される。
	resp.Authenticator = request.Authenticator
	return resp
}

// NewAccessReject は認証失敗応答の骨格を生成する。
func NewAccessReject(request *radius.Packet) *radius.Packet {
	resp := request.Response(radius.CodeAccessReject)
	resp.Authenticator = request.Authenticator
	return resp
}

// SetClass はClass属性（セッションID）を設定する
func SetClass(resp *radius.Packet, sessionID string) {
	if sessionID != "" {
		_ = rfc2865.Class_Set(resp, []byte(sessionID))
	}
}

// SetSessionTimeout はSession-Timeout属性を設定する（0以下なら設定しない）
func SetSessionTimeout(resp *radius.Packet, seconds int) {
	if seconds > 0 {
		_ = rfc2865.SessionTimeout_Set(resp, rfc2865.SessionTimeout(seconds))
	}
}

// SetReplyMessage はReply-Message属性を設定する
func SetReplyMessage(resp *radius.Packet, msg string) {
	if msg != "" {
		_ = rfc2865.ReplyMessage_SetString(resp, msg)
	}
}

// Finalize は応答パケットにProxy-StateとMessage-Authenticatorを付与する。
// 応答送信前に必ず1回だけ呼ぶ。
func Finalize(resp, request *radius.Packet, secret []byte, proxyStates *ProxyStates) {
	proxyStates.Apply(resp)
	SetMessageAuthenticator(resp, secret, request.Authenticator)
}
