package directory

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// ディレクトリ側のロール名
const (
	// RoleReadSessionPassword を持つユーザーのみ、セッションに保存された
	// 払い出しパスワードを参照シークレットとして利用できる
	RoleReadSessionPassword = "read-session-password"
)
