package radius

import (
	"bytes"
	"errors"
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/vendors/microsoft"
)

func TestValidateRaw(t *testing.T) {
	p := radius.New(radius.CodeAccessRequest, []byte("secret"))
	_ = rfc2865.UserName_SetString(p, "alice")
	valid, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	if err := ValidateRaw(valid); err != nil {
		t.Errorf("valid packet: got %v, want nil", err)
	}

	// ヘッダ最小長未満
	if err := ValidateRaw(valid[:10]); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("truncated header: got %v, want ErrMalformedPacket", err)
	}

	// 宣言長と実長の不一致（末尾切り詰め）
	if err := ValidateRaw(valid[:len(valid)-1]); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("truncated attribute: got %v, want ErrMalformedPacket", err)
	}

	// 宣言長の改ざん
	tampered := append([]byte(nil), valid...)
	tampered[3]++
	if err := ValidateRaw(tampered); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("tampered length: got %v, want ErrMalformedPacket", err)
	}

	// 宣言長がヘッダ未満
	short := append([]byte(nil), valid...)
	short[2] = 0
	short[3] = 10
	if err := ValidateRaw(short); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("declared below header: got %v, want ErrMalformedPacket", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	secret := []byte("shared123")
	p := radius.New(radius.CodeAccessRequest, secret)
	_ = rfc2865.UserName_SetString(p, "alice")
	_ = rfc2865.NASIdentifier_SetString(p, "nas-01")
	_ = rfc2865.UserPassword_SetString(p, "s3cr3t")

	raw, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	decoded, err := Decode(raw, secret)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// 同一シークレット・同一Authenticatorで再エンコードするとバイト一致する
	reencoded, err := decoded.MarshalBinary()
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(raw, reencoded) {
		t.Errorf("round trip mismatch:\n got %x\nwant %x", reencoded, raw)
	}

	// 復号された属性の確認
	if name, _ := GetUserName(decoded); name != "alice" {
		t.Errorf("User-Name: got %q, want %q", name, "alice")
	}
	if pw, _ := GetUserPassword(decoded); pw != "s3cr3t" {
		t.Errorf("User-Password: got %q, want %q", pw, "s3cr3t")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte{0x01, 0x02}, []byte("secret")); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("got %v, want ErrMalformedPacket", err)
	}
}

func TestGetCHAPChallengeFallback(t *testing.T) {
	p := radius.New(radius.CodeAccessRequest, []byte("secret"))

	// CHAP-Challenge属性が無い場合はRequest Authenticatorを返す
	got := GetCHAPChallenge(p)
	if !bytes.Equal(got, p.Authenticator[:]) {
		t.Errorf("fallback challenge: got %x, want %x", got, p.Authenticator[:])
	}

	// 属性がある場合はその値を返す
	challenge := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	_ = rfc2865.CHAPChallenge_Set(p, challenge)
	if got := GetCHAPChallenge(p); !bytes.Equal(got, challenge) {
		t.Errorf("explicit challenge: got %x, want %x", got, challenge)
	}
}

func TestGetMSCHAPAttributes(t *testing.T) {
	p := radius.New(radius.CodeAccessRequest, []byte("secret"))

	if _, ok := GetMSCHAPChallenge(p); ok {
		t.Error("expected no MS-CHAP-Challenge")
	}

	challenge := bytes.Repeat([]byte{0xaa}, 16)
	_ = microsoft.MSCHAPChallenge_Set(p, challenge)
	got, ok := GetMSCHAPChallenge(p)
	if !ok || !bytes.Equal(got, challenge) {
		t.Errorf("MS-CHAP-Challenge: got %x ok=%v, want %x", got, ok, challenge)
	}

	// MS-CHAP2-Responseは50バイト固定
	_ = microsoft.MSCHAP2Response_Add(p, make([]byte, 50))
	if _, ok := GetMSCHAP2Response(p); !ok {
		t.Error("expected MS-CHAP2-Response to be found")
	}
}

func TestMessageAuthenticatorRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	req := radius.New(radius.CodeAccessRequest, secret)
	_ = rfc2865.UserName_SetString(req, "alice")

	resp := NewAccessAccept(req)
	SetMessageAuthenticator(resp, secret, req.Authenticator)

	if !HasMessageAuthenticator(resp) {
		t.Fatal("Message-Authenticator not set")
	}

	// 検証はRequest Authenticatorが入った状態で行われる
	saved := resp.Authenticator
	resp.Authenticator = req.Authenticator
	if !VerifyMessageAuthenticator(resp, secret) {
		t.Error("Message-Authenticator verification failed")
	}
	resp.Authenticator = saved

	// シークレットが異なれば検証失敗
	resp.Authenticator = req.Authenticator
	if VerifyMessageAuthenticator(resp, []byte("wrong")) {
		t.Error("verification succeeded with wrong secret")
	}
}

func TestFinalizeEchoesProxyState(t *testing.T) {
	secret := []byte("secret")
	req := radius.New(radius.CodeAccessRequest, secret)
	_ = rfc2865.ProxyState_Add(req, []byte("ps-1"))
	_ = rfc2865.ProxyState_Add(req, []byte("ps-2"))

	resp := NewAccessReject(req)
	Finalize(resp, req, secret, ExtractProxyStates(req))

	values, err := rfc2865.ProxyState_Gets(resp)
	if err != nil {
		t.Fatalf("ProxyState_Gets failed: %v", err)
	}
	if len(values) != 2 || string(values[0]) != "ps-1" || string(values[1]) != "ps-2" {
		t.Errorf("proxy states: got %q, want [ps-1 ps-2]", values)
	}
	if !HasMessageAuthenticator(resp) {
		t.Error("Message-Authenticator not set by Finalize")
	}
}
