package domain

import (
	"fmt"
	"regexp"
)

// Identity is a registered username bound to an RSA public key.
type Identity struct {
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"` // PKCS#1 PEM
	CreatedAt string `json:"createdAt"` // RFC 3339
}

// PendingMessage is a queued, still-encrypted message held by the relay until
// the recipient pulls it. Its identity within the pending set is the
// (FromUsername, ToUsername, ServerTime) tuple.
type PendingMessage struct {
	FromUsername string `json:"fromUsername"`
	ToUsername   string `json:"toUsername"`
	Encrypted    string `json:"encrypted"` // base64 RSA-OAEP ciphertext
	ClientTime   string `json:"clientTime"`
	ServerTime   string `json:"serverTime"`
}

// MailEntry is a decrypted message in the client's local history.
type MailEntry struct {
	FromUsername string `json:"fromUsername"`
	ToUsername   string `json:"toUsername"`
	Text         string `json:"text"`
	ClientTime   string `json:"clientTime"`
	ServerTime   string `json:"serverTime"`
}

// ClientState is the client's whole persisted snapshot. PrivateKey holds the
// passphrase-sealed keystore blob, never the bare key.
type ClientState struct {
	Username      string      `json:"username"`
	PublicKey     string      `json:"publicKey"`
	PrivateKey    string      `json:"privateKey"`
	SessionSecret string      `json:"sessionSecret"`
	MessageList   []MailEntry `json:"messageList"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{1,15}$`)

// ValidateUsername enforces the username rule: 2-16 characters, leading
// letter, ASCII letters and digits only, case-sensitive.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be 2-16 letters/digits starting with a letter", ErrValidation)
	}
	return nil
}
