package domain

// SessionSecretHeader carries the bearer session secret on authenticated calls.
const SessionSecretHeader = "x-session-secret"

// Envelope is the common part of every relay response. Status mirrors the
// HTTP status; Message is set on failures only.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

type SignupRequest struct {
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"`
}

type PreloginRequest struct {
	Username string `json:"username"`
}

type PreloginResponse struct {
	Envelope
	Encrypted string `json:"encrypted"`
}

type LoginRequest struct {
	Username  string `json:"username"`
	Decrypted string `json:"decrypted"`
}

type LoginResponse struct {
	Envelope
	Secret string `json:"secret"`
}

type SendRequest struct {
	ToUsername string `json:"toUsername"`
	Text       string `json:"text"`
	ClientTime string `json:"clientTime"`
}

type PullResponse struct {
	Envelope
	Pending []PendingMessage `json:"pending"`
}
