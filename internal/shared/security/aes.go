package security

import (
	"errors"

	"github.com/go-think/openssl"
)

var ErrAESKeySize = errors.New("aes key must be 16, 24 or 32 bytes")

// AesCBCEncrypt 客户端约定 iv 与 key 相同。
func AesCBCEncrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return openssl.AesCBCEncrypt(src, key, iv, padding)
}

func AesCBCDecrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return openssl.AesCBCDecrypt(src, key, iv, padding)
}

func checkKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	}
	return ErrAESKeySize
}
