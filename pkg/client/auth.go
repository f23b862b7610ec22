package client

import "context"

// AuthClient manages the session and the signed-in user's profile.
type AuthClient struct {
	client *Client
}

// Login exchanges credentials for a session and attaches its token to the
// client.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	if err := a.client.post(ctx, "/api/v1/auth/login", req, &out); err != nil {
		return nil, err
	}
	a.client.SetToken(out.Token)
	return &out, nil
}

// Register creates an account and signs it in.
func (a *AuthClient) Register(ctx context.Context, r Registration) (*Session, error) {
	var out Session
	if err := a.client.post(ctx, "/api/v1/auth/register", r, &out); err != nil {
		return nil, err
	}
	a.client.SetToken(out.Token)
	return &out, nil
}

// Logout drops the token.  Tokens are stateless, so nothing is sent.
func (a *AuthClient) Logout() {
	a.client.SetToken("")
}

// Profile returns the signed-in user.
func (a *AuthClient) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := a.client.get(ctx, "/api/v1/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the signed-in user's details.
func (a *AuthClient) UpdateProfile(ctx context.Context, u ProfileUpdate) (*User, error) {
	var out User
	if err := a.client.put(ctx, "/api/v1/profile", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
