package auth

import (
	"crypto/subtle"

	"layeh.com/radius"
	"layeh.com/radius/rfc2759"
	"layeh.com/radius/rfc3079"
	"layeh.com/radius/vendors/microsoft"

	"github.com/oyaguma3/radius-idp-gateway/internal/dict"
	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
)

// mschapV2Protocol はMS-CHAP v2認証（RFC 2759）。
// MS-CHAP-Challenge(16バイト)とMS-CHAP2-Response(50バイト)を必須属性とする。
// NTレスポンスはユーザー名とピアチャレンジを含むチャレンジハッシュから計算される
// ため、照合自体が交換への束縛検証を兼ねる。成功時はMS-CHAP2-Success
// （Authenticator Response）とMS-MPPE送受信キーを応答する。
type mschapV2Protocol struct {
	dict *dict.Dictionary
}

// NewMSCHAPV2 はMS-CHAP v2プロトコル実装を生成する
func NewMSCHAPV2(d *dict.Dictionary) Protocol {
	return &mschapV2Protocol{dict: d}
}

func (m *mschapV2Protocol) Name() string {
	return ProtocolMSCHAPV2
}

func (m *mschapV2Protocol) Match(pkt *radius.Packet) bool {
	if _, ok := radiuspkg.GetMSCHAPChallenge(pkt); !ok {
		return false
	}
	_, ok := radiuspkg.GetMSCHAP2Response(pkt)
	return ok
}

func (m *mschapV2Protocol) DecodeCredential(pkt *radius.Packet) (*Credential, error) {
	challenge, ok := radiuspkg.GetMSCHAPChallenge(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	if len(challenge) != 16 {
		return nil, ErrInvalidCredential
	}
	response, ok := radiuspkg.GetMSCHAP2Response(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	username, _ := radiuspkg.GetUserName(pkt)
	// MS-CHAP2-Response: ident(1) flags(1) peer-challenge(16) reserved(8) nt-response(24)
	// （RFC 2548 2.3.2）
	return &Credential{
		Protocol:        ProtocolMSCHAPV2,
		Username:        username,
		MSIdent:         response[0],
		MSChallenge:     challenge,
		MSPeerChallenge: response[2:18],
		MSNTResponse:    response[26:50],
	}, nil
}

func (m *mschapV2Protocol) Verify(cred *Credential, refs []string) (string, bool) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		expected, err := rfc2759.GenerateNTResponse(cred.MSChallenge, cred.MSPeerChallenge,
			[]byte(cred.Username), []byte(ref))
		if err != nil {
			continue
		}
		if subtle.ConstantTimeCompare(expected, cred.MSNTResponse) == 1 {
			return ref, true
		}
	}
	return "", false
}

func (m *mschapV2Protocol) BuildReply(resp, req *radius.Packet, secret []byte, cred *Credential, matched string, success bool) error {
	if !success {
		return m.dict.AddToPacket(resp, "MS-CHAP-Error", "E=691 R=0 V=3")
	}

	password := []byte(matched)

	// Authenticator Response（"S=<40桁hex>"）でサーバー側の応答を束縛する
	authResponse, err := rfc2759.GenerateAuthenticatorResponse(cred.MSChallenge, cred.MSPeerChallenge,
		cred.MSNTResponse, []byte(cred.Username), password)
	if err != nil {
		return err
	}
	successAttr := make([]byte, 43)
	successAttr[0] = cred.MSIdent
	copy(successAttr[1:], authResponse)
	if err := microsoft.MSCHAP2Success_Add(resp, successAttr); err != nil {
		return err
	}

	// MPPEセッションキー。salt暗号化はresp.Secretとresp.Authenticator
	// （Request Authenticatorをセット済み）で行われる。
	recvKey, err := rfc3079.MakeKey(cred.MSNTResponse, password, false)
	if err != nil {
		return err
	}
	sendKey, err := rfc3079.MakeKey(cred.MSNTResponse, password, true)
	if err != nil {
		return err
	}
	if err := microsoft.MSMPPERecvKey_Add(resp, recvKey); err != nil {
		return err
	}
	if err := microsoft.MSMPPESendKey_Add(resp, sendKey); err != nil {
		return err
	}
	if err := microsoft.MSMPPEEncryptionPolicy_Add(resp, microsoft.MSMPPEEncryptionPolicy_Value_EncryptionAllowed); err != nil {
		return err
	}
	return microsoft.MSMPPEEncryptionTypes_Add(resp, microsoft.MSMPPEEncryptionTypes_Value_RC440or128BitAllowed)
}
