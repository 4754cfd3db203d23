package auth

import (
	"crypto/md5"
	"crypto/subtle"

	"layeh.com/radius"

	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
)

// chapProtocol はCHAP（チャレンジ・レスポンス）認証。
// クライアントはMD5(ident || secret || challenge)を提示する（RFC 2865 / RFC 1994）。
// サーバー側は各参照シークレットについて同じ変換を再計算して比較する。
type chapProtocol struct{}

// NewCHAP はCHAPプロトコル実装を生成する
func NewCHAP() Protocol {
	return &chapProtocol{}
}

func (c *chapProtocol) Name() string {
	return ProtocolCHAP
}

func (c *chapProtocol) Match(pkt *radius.Packet) bool {
	_, ok := radiuspkg.GetCHAPPassword(pkt)
	return ok
}

func (c *chapProtocol) DecodeCredential(pkt *radius.Packet) (*Credential, error) {
	chapPassword, ok := radiuspkg.GetCHAPPassword(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	username, _ := radiuspkg.GetUserName(pkt)
	return &Credential{
		Protocol:      ProtocolCHAP,
		Username:      username,
		ChapIdent:     chapPassword[0],
		ChapChallenge: radiuspkg.GetCHAPChallenge(pkt),
		ChapResponse:  chapPassword[1:],
	}, nil
}

func (c *chapProtocol) Verify(cred *Credential, refs []string) (string, bool) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		h := md5.New()
		h.Write([]byte{cred.ChapIdent})
		h.Write([]byte(ref))
		h.Write(cred.ChapChallenge)
		if subtle.ConstantTimeCompare(h.Sum(nil), cred.ChapResponse) == 1 {
			return ref, true
		}
	}
	return "", false
}

func (c *chapProtocol) BuildReply(resp, req *radius.Packet, secret []byte, cred *Credential, matched string, success bool) error {
	// CHAPはプロトコル固有の応答属性を持たない
	return nil
}
