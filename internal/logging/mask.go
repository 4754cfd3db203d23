package logging

import "strings"

// MaskUsername はアクセスログ向けにユーザー名をマスキングする。
// 先頭2文字 + マスク文字('*') の形式で出力する。
// enabled=falseまたは文字列長が3以下の場合はそのまま返す。
func MaskUsername(name string, enabled bool) string {
	if !enabled || len(name) <= 3 {
		return name
	}
	return name[:2] + strings.Repeat("*", len(name)-2)
}
