package clinic

import (
	"context"

	"github.com/md-rashed-zaman/clinicbook/libs/auth"
)

// Session is an authenticated user context. Workflows receive the user ID
// explicitly from a Session rather than reading ambient global state.
type Session struct {
	Token    string
	UserID   int64
	Fullname string
	Role     string
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Fullname string `json:"fullname"`
		Role     string `json:"role"`
	} `json:"user"`
}

// Login authenticates against the backend and installs the returned token on
// the client for subsequent calls.
func (c *Client) Login(ctx context.Context, phoneNumber, password string) (Session, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{PhoneNumber: phoneNumber, Password: password}, &resp, nil); err != nil {
		return Session{}, err
	}
	c.SetAccessToken(resp.Token)
	return Session{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Fullname: resp.User.Fullname,
		Role:     resp.User.Role,
	}, nil
}

// RestoreSession rebuilds a session from a stored token without a network
// call, rejecting expired tokens, and installs the token on the client.
func (c *Client) RestoreSession(token string) (Session, error) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return Session{}, err
	}
	c.SetAccessToken(token)
	return Session{
		Token:    token,
		UserID:   claims.UserID,
		Fullname: claims.Fullname,
		Role:     claims.Role,
	}, nil
}
