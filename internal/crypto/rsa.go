package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"sealbox/internal/domain"
)

// keyBits is the RSA modulus size. 2048 is the standard secure default.
const keyBits = 2048

const (
	publicBlockType  = "RSA PUBLIC KEY"
	privateBlockType = "RSA PRIVATE KEY"
)

// GenerateKeyPair returns a fresh RSA key pair as PKCS#1 PEM strings.
func GenerateKeyPair() (publicPEM, privatePEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return "", "", fmt.Errorf("%w: generate key: %v", domain.ErrCrypto, err)
	}
	pubBlock := &pem.Block{Type: publicBlockType, Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)}
	privBlock := &pem.Block{Type: privateBlockType, Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(pubBlock)), string(pem.EncodeToMemory(privBlock)), nil
}

// Encrypt seals plaintext under the PEM public key with RSA-OAEP/SHA-256 and
// returns standard base64. Plaintext longer than the per-encryption cap
// (modulus size minus OAEP overhead, 190 bytes for 2048-bit keys) is rejected.
func Encrypt(publicPEM string, plaintext []byte) (string, error) {
	pub, err := parsePublicKey(publicPEM)
	if err != nil {
		return "", err
	}
	if limit := pub.Size() - 2*sha256.Size - 2; len(plaintext) > limit {
		return "", fmt.Errorf("%w: plaintext exceeds %d-byte limit", domain.ErrCrypto, limit)
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: encrypt: %v", domain.ErrCrypto, err)
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt opens a base64 RSA-OAEP/SHA-256 ciphertext with the PEM private key.
func Decrypt(privatePEM, ciphertext string) ([]byte, error) {
	key, err := parsePrivateKey(privatePEM)
	if err != nil {
		return nil, err
	}
	ct, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not valid base64", domain.ErrCrypto)
	}
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt: %v", domain.ErrCrypto, err)
	}
	return pt, nil
}

func parsePublicKey(publicPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil || block.Type != publicBlockType {
		return nil, fmt.Errorf("%w: malformed public key", domain.ErrCrypto)
	}
	pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed public key", domain.ErrCrypto)
	}
	return pub, nil
}

func parsePrivateKey(privatePEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil || block.Type != privateBlockType {
		return nil, fmt.Errorf("%w: malformed private key", domain.ErrCrypto)
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed private key", domain.ErrCrypto)
	}
	return key, nil
}
