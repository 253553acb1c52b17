package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"sealbox/internal/domain"
)

// The current supported version of the sealed blob format stored on disk.
const keystoreFormatVersion = 1

// blob is the sealed JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// SealPrivateKey encrypts a PEM private key under a passphrase-derived key and
// returns the blob as base64 for embedding in the client snapshot.
func SealPrivateKey(passphrase, privatePEM string) (string, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	defer wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	var nonce [12]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], []byte(privatePEM), salt[:])

	raw, err := json.Marshal(blob{V: keystoreFormatVersion, Salt: salt[:], N: N, R: r, P: p, Cipher: ct})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// OpenPrivateKey decrypts a sealed blob back into the PEM private key.
func OpenPrivateKey(passphrase, sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: malformed key blob", domain.ErrCrypto)
	}
	var bl blob
	if err := json.Unmarshal(raw, &bl); err != nil {
		return "", fmt.Errorf("%w: malformed key blob", domain.ErrCrypto)
	}
	if bl.V > keystoreFormatVersion {
		return "", fmt.Errorf("%w: unsupported keystore version %d", domain.ErrCrypto, bl.V)
	}
	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	defer wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
	}
	var nonce [12]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: wrong passphrase or corrupted key", domain.ErrCrypto)
	}
	return string(pt), nil
}

// wipe overwrites b with zeros in a constant-time friendly way.
func wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
