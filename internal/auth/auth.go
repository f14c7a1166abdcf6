package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// The identity service owns sessions; this package only forwards the caller's
// Authorization header and trusts the answer. Public share resolution never
// comes through here.

var gClient *Client

type Client struct {
	baseURL string
	http    *http.Client
}

func InitClient(cfg *Config) {
	gClient = &Client{
		baseURL: cfg.AuthAddr,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// UserInfo is the identity service's view of a user.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerifyToken resolves the calling user's id from the request's Authorization
// header, or fails if the session is missing or invalid.
func VerifyToken(r *http.Request) (string, error) {
	authToken := r.Header.Get("Authorization")
	if authToken == "" {
		return "", fmt.Errorf("no authorization header")
	}

	user, err := gClient.currentUser(authToken)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

func (c *Client) currentUser(authToken string) (*UserInfo, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Authorization", authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service rejected session: status %d", resp.StatusCode)
	}

	var body struct {
		User UserInfo `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if body.User.ID == "" {
		return nil, fmt.Errorf("auth service returned empty user")
	}

	return &body.User, nil
}
