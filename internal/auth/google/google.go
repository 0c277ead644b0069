// Package google implements the Google OIDC login flow: authorization-URL
// generation with stored state, and the callback exchange that ends in a
// local user and session.
package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

// DefaultIssuer is the fixed Google issuer. Everything else (authorization,
// token, userinfo, revocation endpoints) comes from its discovery document.
const DefaultIssuer = "https://accounts.google.com"

var (
	// ErrEmailNotVerified rejects logins where the provider has not marked
	// the email address verified.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrNonceMismatch rejects ID tokens whose nonce does not match the one
	// stored for this login attempt.
	ErrNonceMismatch = errors.New("id token nonce mismatch")
)

type Config struct {
	ClientID     string
	ClientSecret string
	// HostURL is this service's externally visible base URL; the redirect
	// URI is HostURL + "/auth/google/callback".
	HostURL string
	// Issuer overrides DefaultIssuer, for tests against a fake provider.
	Issuer string
}

// Client holds the provider metadata fetched once at startup and the stores
// the login flow writes through.
type Client struct {
	provider           *oidc.Provider
	verifier           *oidc.IDTokenVerifier
	oauthConfig        *oauth2.Config
	revocationEndpoint string
	httpClient         *http.Client

	states   *store.OAuthStateStore
	users    *store.UserStore
	sessions *store.SessionStore
	logger   *slog.Logger
}

// userInfoClaims is the claim set we require from the userinfo endpoint.
type userInfoClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

func New(ctx context.Context, cfg Config, states *store.OAuthStateStore, users *store.UserStore, sessions *store.SessionStore, logger *slog.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("google oauth config missing client id or secret")
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover provider: %w", err)
	}

	// Google publishes its RFC 7009 revocation endpoint as a discovery
	// extension rather than a standard field.
	var extra struct {
		RevocationEndpoint string `json:"revocation_endpoint"`
	}
	if err := provider.Claims(&extra); err != nil {
		return nil, fmt.Errorf("provider metadata claims: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  strings.TrimSuffix(cfg.HostURL, "/") + "/auth/google/callback",
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}

	return &Client{
		provider:           provider,
		verifier:           verifier,
		oauthConfig:        oauthConfig,
		revocationEndpoint: extra.RevocationEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		states:             states,
		users:              users,
		sessions:           sessions,
		logger:             logger,
	}, nil
}

// RevocationEndpoint returns the revocation URL from the discovery document.
func (c *Client) RevocationEndpoint() string {
	return c.revocationEndpoint
}

// AuthorizeURL builds the provider authorization URL for a fresh login
// attempt. The CSRF state and nonce are stored before the URL is returned,
// so the callback can correlate them.
func (c *Client) AuthorizeURL(returnURL string) (string, error) {
	state, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	if err := c.states.Create(state, nonce, returnURL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}

	return c.oauthConfig.AuthCodeURL(state, oidc.Nonce(nonce)), nil
}

// Callback completes a login: it consumes the stored state, exchanges the
// code, verifies the ID token against the stored nonce, fetches userinfo,
// upserts the user by verified email, and issues a session. Every check
// fails closed; no session exists unless all of them passed.
func (c *Client) Callback(ctx context.Context, code, state string) (sessionToken, returnURL string, err error) {
	st, err := c.states.Consume(state)
	if err != nil {
		// Covers replayed and never-issued states; the code is discarded.
		return "", "", fmt.Errorf("invalid or expired state: %w", err)
	}

	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", "", errors.New("provider did not return an id token")
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", "", fmt.Errorf("verify id token: %w", err)
	}
	if idToken.Nonce != st.Nonce {
		return "", "", ErrNonceMismatch
	}

	userInfo, err := c.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return "", "", fmt.Errorf("fetch userinfo: %w", err)
	}
	var claims userInfoClaims
	if err := userInfo.Claims(&claims); err != nil {
		return "", "", fmt.Errorf("userinfo claims: %w", err)
	}
	if claims.Email == "" {
		return "", "", errors.New("userinfo missing email")
	}
	if !claims.EmailVerified {
		return "", "", ErrEmailNotVerified
	}

	user, err := c.upsertUser(claims)
	if err != nil {
		return "", "", err
	}

	sess, err := c.sessions.Create(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("create session: %w", err)
	}

	c.logger.Info("login", "user_id", user.ID, "email", claims.Email)
	return sess.Token(), st.ReturnURL, nil
}

// upsertUser returns the existing user for the email or creates one from
// the provider claims. Email is the identity correlation key.
func (c *Client) upsertUser(claims userInfoClaims) (*model.User, error) {
	user, err := c.users.GetByEmail(claims.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = c.users.Create(claims.Email, claims.GivenName, claims.FamilyName)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RevokeToken revokes a provider token via the discovered revocation
// endpoint.
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	if c.revocationEndpoint == "" {
		return errors.New("provider has no revocation endpoint")
	}

	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revocationEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke: status %d", resp.StatusCode)
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
