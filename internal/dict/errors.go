package dict

import "errors"

// 辞書関連エラー
var (
	// ErrDuplicateDefinition は属性定義が重複した場合のエラー
	ErrDuplicateDefinition = errors.New("duplicate attribute definition")

	// ErrUnknownAttribute は属性名が辞書に存在しない場合のエラー
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrInvalidValue は属性値が型に適合しない場合のエラー
	ErrInvalidValue = errors.New("invalid attribute value")

	// ErrMalformedVSA はVendor-Specific属性の構造が不正な場合のエラー
	ErrMalformedVSA = errors.New("malformed vendor-specific attribute")
)
