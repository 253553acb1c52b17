package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sealbox/internal/domain"
)

// Client is the JSON-over-HTTP relay client.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for the given base URL, defaulting to
// http.DefaultClient when hc is nil.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Base: base, HTTP: hc}
}

func (c *Client) Signup(ctx context.Context, username, publicKey string) error {
	return c.post(ctx, "/signup", "", domain.SignupRequest{Username: username, PublicKey: publicKey}, nil)
}

func (c *Client) Prelogin(ctx context.Context, username string) (string, error) {
	var out domain.PreloginResponse
	if err := c.post(ctx, "/prelogin", "", domain.PreloginRequest{Username: username}, &out); err != nil {
		return "", err
	}
	return out.Encrypted, nil
}

func (c *Client) Login(ctx context.Context, username, decrypted string) (string, error) {
	var out domain.LoginResponse
	if err := c.post(ctx, "/login", "", domain.LoginRequest{Username: username, Decrypted: decrypted}, &out); err != nil {
		return "", err
	}
	return out.Secret, nil
}

func (c *Client) Send(ctx context.Context, secret string, req domain.SendRequest) error {
	return c.post(ctx, "/send", secret, req, nil)
}

func (c *Client) Pull(ctx context.Context, secret string) ([]domain.PendingMessage, error) {
	var out domain.PullResponse
	if err := c.post(ctx, "/pull", secret, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Pending, nil
}

// post sends one JSON request and decodes the envelope. A non-2xx envelope
// becomes a typed error carrying the server's short message.
func (c *Client) post(ctx context.Context, path, secret string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(domain.SessionSecretHeader, secret)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("relay post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("relay post %s: %w", path, err)
	}
	var env domain.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("relay post %s: %s", path, resp.Status)
	}
	if env.Status/100 != 2 {
		return fmt.Errorf("%w: %s", domain.KindForStatus(env.Status), env.Message)
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// Compile-time assertion that Client implements domain.RelayClient.
var _ domain.RelayClient = (*Client)(nil)
