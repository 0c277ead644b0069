package model

import "time"

// SessionTokenSeparator joins the two token halves. The first half doubles
// as the lookup key so a naive equality scan over full tokens is never needed.
const SessionTokenSeparator = "_"

type Session struct {
	ID        int64     `json:"id"`
	TokenP1   string    `json:"-"`
	TokenP2   string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token returns the full bearer token handed to the client.
func (s *Session) Token() string {
	return s.TokenP1 + SessionTokenSeparator + s.TokenP2
}

// OAuthState correlates an authorization redirect with its callback.
// A row is consumed (read and deleted) at most once.
type OAuthState struct {
	ID        int64
	CSRFState string
	Nonce     string
	ReturnURL string
	CreatedAt time.Time
}
