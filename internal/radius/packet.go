// Package radius はlayeh.com/radius上のパケット処理ヘルパーを提供する。
// 生パケットの検証、資格情報属性の取り出し、応答パケットの構築を担う。
package radius

import (
	"encoding/binary"
	"fmt"
	"net"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/vendors/microsoft"
)

// RADIUSヘッダ長とパケット長の制約（RFC 2865 Section 3）
const (
	headerLength    = 20
	maxPacketLength = 4096
)

// ValidateRaw は生パケットのヘッダ検証を行う。
// 最小長未満、宣言長と実長の不一致、上限超過はErrMalformedPacket。
func ValidateRaw(b []byte) error {
	if len(b) < headerLength {
		return fmt.Errorf("%w: %d bytes (minimum %d)", ErrMalformedPacket, len(b), headerLength)
	}
	declared := int(binary.BigEndian.Uint16(b[2:4]))
	if declared < headerLength || declared > maxPacketLength {
		return fmt.Errorf("%w: declared length %d", ErrMalformedPacket, declared)
	}
	if declared != len(b) {
		return fmt.Errorf("%w: declared length %d, actual %d", ErrMalformedPacket, declared, len(b))
	}
	return nil
}

// Decode は生パケットを検証してパースする。
// 失敗した場合、呼び出し側は応答せずパケットを破棄する（RFC 2865の
// "silently discard" 規約）。
func Decode(b []byte, secret []byte) (*radius.Packet, error) {
	if err := ValidateRaw(b); err != nil {
		return nil, err
	}
	p, err := radius.Parse(b, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPacket, err)
	}
	return p, nil
}

// GetUserName はUser-Name属性を取得する。
// 属性が存在しない場合は("", false)を返す。
func GetUserName(p *radius.Packet) (string, bool) {
	val := rfc2865.UserName_GetString(p)
	if val == "" {
		return "", false
	}
	return val, true
}

// GetNASIdentifier はNAS-Identifier属性を取得する。
// 属性が存在しない場合は("", false)を返す。
func GetNASIdentifier(p *radius.Packet) (string, bool) {
	val := rfc2865.NASIdentifier_GetString(p)
	if val == "" {
		return "", false
	}
	return val, true
}

// GetNASIPAddress はNAS-IP-Address属性を取得する。
// 属性が存在しない場合は(nil, false)を返す。
func GetNASIPAddress(p *radius.Packet) (net.IP, bool) {
	ip, err := rfc2865.NASIPAddress_Lookup(p)
	if err != nil {
		return nil, false
	}
	return ip, true
}

// GetUserPassword はUser-Password属性を共有シークレットで復号して返す。
// 属性が存在しない、または復号できない場合は("", false)を返す。
func GetUserPassword(p *radius.Packet) (string, bool) {
	val, err := rfc2865.UserPassword_LookupString(p)
	if err != nil {
		return "", false
	}
	return val, true
}

// HasUserPassword はUser-Password属性の有無を返す（復号はしない）
func HasUserPassword(p *radius.Packet) bool {
	return p.Get(rfc2865.UserPassword_Type) != nil
}

// GetCHAPPassword はCHAP-Password属性（ident 1バイト + ダイジェスト16バイト）を返す。
func GetCHAPPassword(p *radius.Packet) ([]byte, bool) {
	val, err := rfc2865.CHAPPassword_Lookup(p)
	if err != nil || len(val) != 17 {
		return nil, false
	}
	return val, true
}

// GetCHAPChallenge はCHAP-Challenge属性を返す。
// 属性が無い場合はRequest Authenticatorがチャレンジとなる（RFC 2865 Section 2.2）。
func GetCHAPChallenge(p *radius.Packet) []byte {
	val, err := rfc2865.CHAPChallenge_Lookup(p)
	if err != nil || len(val) == 0 {
		auth := make([]byte, 16)
		copy(auth, p.Authenticator[:])
		return auth
	}
	return val
}

// GetMSCHAPChallenge はMS-CHAP-Challenge属性を返す。
func GetMSCHAPChallenge(p *radius.Packet) ([]byte, bool) {
	val, err := microsoft.MSCHAPChallenge_Lookup(p)
	if err != nil || len(val) == 0 {
		return nil, false
	}
	return val, true
}

// GetMSCHAPResponse はMS-CHAP-Response属性（50バイト）を返す。
func GetMSCHAPResponse(p *radius.Packet) ([]byte, bool) {
	val, err := microsoft.MSCHAPResponse_Lookup(p)
	if err != nil || len(val) != 50 {
		return nil, false
	}
	return val, true
}

// GetMSCHAP2Response はMS-CHAP2-Response属性（50バイト）を返す。
func GetMSCHAP2Response(p *radius.Packet) ([]byte, bool) {
	val, err := microsoft.MSCHAP2Response_Lookup(p)
	if err != nil || len(val) != 50 {
		return nil, false
	}
	return val, true
}
