package auth

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// chapDigest はクライアント側のCHAPレスポンス計算（RFC 1994 Section 4.1）
func chapDigest(ident byte, secret string, challenge []byte) []byte {
	h := md5.New()
	h.Write([]byte{ident})
	h.Write([]byte(secret))
	h.Write(challenge)
	return h.Sum(nil)
}

func newCHAPRequest(t *testing.T, ident byte, secret string, challenge []byte) *radius.Packet {
	t.Helper()
	pkt := radius.New(radius.CodeAccessRequest, []byte("secret"))
	rfc2865.UserName_SetString(pkt, "alice")
	rfc2865.CHAPChallenge_Set(pkt, challenge)
	rfc2865.CHAPPassword_Set(pkt, append([]byte{ident}, chapDigest(ident, secret, challenge)...))
	return pkt
}

func TestCHAPVerify(t *testing.T) {
	challenge := make([]byte, 16)
	if _, err := rand.Read(challenge); err != nil {
		t.Fatal(err)
	}
	pkt := newCHAPRequest(t, 7, "s3cr3t", challenge)

	c := NewCHAP()
	cred, err := c.DecodeCredential(pkt)
	if err != nil {
		t.Fatalf("DecodeCredential failed: %v", err)
	}
	if cred.ChapIdent != 7 {
		t.Errorf("ident: got %d, want 7", cred.ChapIdent)
	}
	if !bytes.Equal(cred.ChapChallenge, challenge) {
		t.Errorf("challenge: got %x, want %x", cred.ChapChallenge, challenge)
	}

	matched, ok := c.Verify(cred, []string{"other", "s3cr3t"})
	if !ok {
		t.Fatal("verification failed for correct password")
	}
	if matched != "s3cr3t" {
		t.Errorf("matched: got %q, want s3cr3t", matched)
	}
}

func TestCHAPVerifyBitFlip(t *testing.T) {
	challenge := make([]byte, 16)
	if _, err := rand.Read(challenge); err != nil {
		t.Fatal(err)
	}
	pkt := newCHAPRequest(t, 7, "s3cr3t", challenge)

	c := NewCHAP()
	cred, err := c.DecodeCredential(pkt)
	if err != nil {
		t.Fatalf("DecodeCredential failed: %v", err)
	}
	// ダイジェストの1ビットを反転させると照合は失敗する
	cred.ChapResponse[0] ^= 0x01
	if _, ok := c.Verify(cred, []string{"s3cr3t"}); ok {
		t.Error("verification succeeded for tampered digest")
	}
}

func TestCHAPChallengeFallsBackToAuthenticator(t *testing.T) {
	pkt := radius.New(radius.CodeAccessRequest, []byte("secret"))
	rfc2865.UserName_SetString(pkt, "alice")

	// CHAP-Challenge属性なし: Request Authenticatorがチャレンジとなる
	digest := chapDigest(3, "s3cr3t", pkt.Authenticator[:])
	rfc2865.CHAPPassword_Set(pkt, append([]byte{3}, digest...))

	c := NewCHAP()
	cred, err := c.DecodeCredential(pkt)
	if err != nil {
		t.Fatalf("DecodeCredential failed: %v", err)
	}
	if _, ok := c.Verify(cred, []string{"s3cr3t"}); !ok {
		t.Error("verification failed with authenticator challenge")
	}
}

func TestCHAPDecodeCredentialMissing(t *testing.T) {
	pkt := radius.New(radius.CodeAccessRequest, []byte("secret"))
	c := NewCHAP()
	if _, err := c.DecodeCredential(pkt); err == nil {
		t.Error("expected error for missing CHAP-Password")
	}
}
