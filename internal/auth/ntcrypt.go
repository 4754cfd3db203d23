package auth

import (
	"crypto/des"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"golang.org/x/crypto/md4"
)

// ntPasswordHash はパスワードのNTハッシュ（MD4 over UTF-16LE）を返す（RFC 2433 A.3）
func ntPasswordHash(password string) []byte {
	h := md4.New()
	h.Write(utf16le(password))
	return h.Sum(nil)
}

// ntPasswordHashHash はNTハッシュのMD4ハッシュを返す（RFC 2433 A.4、キー素材用）
func ntPasswordHashHash(password string) []byte {
	h := md4.New()
	h.Write(ntPasswordHash(password))
	return h.Sum(nil)
}

// ntChallengeResponse は8バイトチャレンジに対する24バイトNTレスポンスを計算する
// （RFC 2433 A.5: 21バイトにゼロ拡張したNTハッシュを7バイトずつ3鍵に分割し、
// それぞれでチャレンジをDES暗号化して連結する）。
func ntChallengeResponse(challenge, ntHash []byte) ([]byte, error) {
	if len(challenge) < 8 {
		return nil, fmt.Errorf("challenge too short: %d bytes", len(challenge))
	}
	zHash := make([]byte, 21)
	copy(zHash, ntHash)

	response := make([]byte, 24)
	for i := 0; i < 3; i++ {
		if err := desEncrypt(zHash[i*7:(i+1)*7], challenge[:8], response[i*8:(i+1)*8]); err != nil {
			return nil, err
		}
	}
	return response, nil
}

// desEncrypt は7バイト鍵（パリティ挿入で8バイトに拡張）でsrcをDES暗号化する
func desEncrypt(key7, src, dst []byte) error {
	c, err := des.NewCipher(expandDESKey(key7))
	if err != nil {
		return err
	}
	c.Encrypt(dst, src)
	return nil
}

// expandDESKey は56ビット鍵を7ビットごとに区切り、パリティビット位置を挿入して
// 64ビットのDES鍵に拡張する
func expandDESKey(k []byte) []byte {
	out := make([]byte, 8)
	out[0] = k[0]
	out[1] = k[0]<<7 | k[1]>>1
	out[2] = k[1]<<6 | k[2]>>2
	out[3] = k[2]<<5 | k[3]>>3
	out[4] = k[3]<<4 | k[4]>>4
	out[5] = k[4]<<3 | k[5]>>5
	out[6] = k[5]<<2 | k[6]>>6
	out[7] = k[6] << 1
	return out
}

// utf16le は文字列をUTF-16LEバイト列に変換する
func utf16le(s string) []byte {
	codes := utf16.Encode([]rune(s))
	b := make([]byte, len(codes)*2)
	for i, c := range codes {
		binary.LittleEndian.PutUint16(b[i*2:], c)
	}
	return b
}

// mppeKeysEncrypt はMS-CHAP-MPPE-Keys属性値（32バイト）を共有シークレットと
// Request Authenticatorで暗号化する（RFC 2548 2.4.3、User-Password方式のチェーン）。
func mppeKeysEncrypt(keys []byte, secret []byte, requestAuth [16]byte) []byte {
	plain := make([]byte, 32)
	copy(plain, keys)

	out := make([]byte, 32)
	prev := requestAuth[:]
	for i := 0; i < 2; i++ {
		h := md5.New()
		h.Write(secret)
		h.Write(prev)
		block := h.Sum(nil)
		for j := 0; j < 16; j++ {
			out[i*16+j] = plain[i*16+j] ^ block[j]
		}
		prev = out[i*16 : (i+1)*16]
	}
	return out
}
