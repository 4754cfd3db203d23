package directory

// User はディレクトリに登録されたユーザーを表す
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Enabled  bool     `json:"enabled"`
	Roles    []string `json:"roles"`
}

// HasRole は指定されたロールを保持しているかを返す
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// credentialJSON はJSONパース用の内部構造体
type credentialJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// credentialsResponseJSON はJSONパース用の内部構造体
type credentialsResponseJSON struct {
	Credentials []credentialJSON `json:"credentials"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
