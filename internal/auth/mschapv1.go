package auth

import (
	"crypto/subtle"
	"encoding/hex"

	"layeh.com/radius"

	"github.com/oyaguma3/radius-idp-gateway/internal/dict"
	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
)

// mschapV1Protocol はMS-CHAP v1認証（RFC 2433）。
// MS-CHAP-Challenge(8バイト)とMS-CHAP-Response(50バイト)を必須属性とし、
// NTレスポンス（[26:50]）をNTハッシュ由来のDES変換で再計算して照合する。
// 成功時はMS-CHAP-MPPE-Keysでセッション鍵素材を応答する（RFC 2548 2.4.3）。
type mschapV1Protocol struct {
	dict *dict.Dictionary
}

// NewMSCHAPV1 はMS-CHAP v1プロトコル実装を生成する
func NewMSCHAPV1(d *dict.Dictionary) Protocol {
	return &mschapV1Protocol{dict: d}
}

func (m *mschapV1Protocol) Name() string {
	return ProtocolMSCHAPV1
}

func (m *mschapV1Protocol) Match(pkt *radius.Packet) bool {
	if _, ok := radiuspkg.GetMSCHAPChallenge(pkt); !ok {
		return false
	}
	_, ok := radiuspkg.GetMSCHAPResponse(pkt)
	return ok
}

func (m *mschapV1Protocol) DecodeCredential(pkt *radius.Packet) (*Credential, error) {
	challenge, ok := radiuspkg.GetMSCHAPChallenge(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	if len(challenge) < 8 {
		return nil, ErrInvalidCredential
	}
	response, ok := radiuspkg.GetMSCHAPResponse(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	username, _ := radiuspkg.GetUserName(pkt)
	// MS-CHAP-Response: ident(1) flags(1) LM-Response(24) NT-Response(24)
	return &Credential{
		Protocol:     ProtocolMSCHAPV1,
		Username:     username,
		MSIdent:      response[0],
		MSChallenge:  challenge,
		MSNTResponse: response[26:50],
	}, nil
}

func (m *mschapV1Protocol) Verify(cred *Credential, refs []string) (string, bool) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		expected, err := ntChallengeResponse(cred.MSChallenge, ntPasswordHash(ref))
		if err != nil {
			continue
		}
		if subtle.ConstantTimeCompare(expected, cred.MSNTResponse) == 1 {
			return ref, true
		}
	}
	return "", false
}

func (m *mschapV1Protocol) BuildReply(resp, req *radius.Packet, secret []byte, cred *Credential, matched string, success bool) error {
	if !success {
		// E=691: 認証失敗（ERROR_AUTHENTICATION_FAILURE）
		return m.dict.AddToPacket(resp, "MS-CHAP-Error", "E=691 R=0")
	}

	// MS-CHAP-MPPE-Keys: LMキー(8、未使用のためゼロ) + NTセッションキー(16) を
	// 32バイトにパディングして暗号化する
	keys := make([]byte, 24)
	copy(keys[8:24], ntPasswordHashHash(matched)[:16])
	encrypted := mppeKeysEncrypt(keys, secret, req.Authenticator)

	return m.dict.AddToPacket(resp, "MS-CHAP-MPPE-Keys", hex.EncodeToString(encrypted))
}
