package session

// Valkeyキープレフィックス
const (
	KeyPrefixSession   = "sess:"     // 認証セッション本体
	KeyPrefixUserIndex = "idx:user:" // レルム+ユーザー → セッションID索引
	KeyPrefixNote      = "note:"     // セッションノート
)

// セッションノート名
const (
	// NoteSessionPassword はAccess-Accept時に払い出したパスワードを保持する
	NoteSessionPassword = "radius_session_password"
)

func sessionKey(id string) string {
	return KeyPrefixSession + id
}

func userIndexKey(realm, username string) string {
	return KeyPrefixUserIndex + realm + ":" + username
}

func noteKey(id, name string) string {
	return KeyPrefixNote + id + ":" + name
}
