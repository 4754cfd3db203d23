package auth

import (
	"layeh.com/radius"

	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
)

// papProtocol はPAP（平文パスワード）認証。
// User-Password属性は共有シークレットで難読化されており（RFC 2865 5.2）、
// layeh側で復号される。照合は参照シークレットとの直接比較。
type papProtocol struct{}

// NewPAP はPAPプロトコル実装を生成する
func NewPAP() Protocol {
	return &papProtocol{}
}

func (p *papProtocol) Name() string {
	return ProtocolPAP
}

func (p *papProtocol) Match(pkt *radius.Packet) bool {
	return radiuspkg.HasUserPassword(pkt)
}

func (p *papProtocol) DecodeCredential(pkt *radius.Packet) (*Credential, error) {
	password, ok := radiuspkg.GetUserPassword(pkt)
	if !ok {
		return nil, ErrMissingCredential
	}
	username, _ := radiuspkg.GetUserName(pkt)
	return &Credential{
		Protocol: ProtocolPAP,
		Username: username,
		Password: password,
	}, nil
}

// Verify は参照シークレットのいずれかと一致すれば成功とする
// （ローテーション中の複数有効パスワードに対応）。
func (p *papProtocol) Verify(cred *Credential, refs []string) (string, bool) {
	for _, ref := range refs {
		if ref != "" && cred.Password == ref {
			return ref, true
		}
	}
	return "", false
}

func (p *papProtocol) BuildReply(resp, req *radius.Packet, secret []byte, cred *Credential, matched string, success bool) error {
	// PAPはプロトコル固有の応答属性を持たない
	return nil
}
