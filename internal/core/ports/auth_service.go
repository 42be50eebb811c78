package ports

import "context"

// LoginResult carries both freshly minted tokens. The refresh token must only
// ever travel in the Set-Cookie header, never in a response body.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the token lifecycle: issuance on login and re-issuance
// of access tokens on refresh. Logout is purely a transport concern (cookie
// clearing) and has no service-side state to touch.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh mints a new access token from a refresh token, re-reading the
	// user's roles from the store so role changes apply without re-login.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
