package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carenest/carenest-go/internal/types"
)

// Login exchanges credentials for an access/refresh pair (or a bare key on
// token-auth deployments).
func Login(ctx context.Context, httpClient *http.Client, baseURL string, req types.LoginRequest) (*types.LoginResponse, error) {
	if err := types.ValidateNonEmpty(req.Email, "email"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonEmpty(req.Password, "password"); err != nil {
		return nil, err
	}
	var resp types.LoginResponse
	url := fmt.Sprintf("%s/api/auth/login/", baseURL)
	if err := do(ctx, httpClient, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It does not establish a session: callers are
// expected to follow up with Login.
func Register(ctx context.Context, httpClient *http.Client, baseURL string, req types.RegisterRequest) error {
	if err := types.ValidateNonEmpty(req.Email, "email"); err != nil {
		return err
	}
	if err := types.ValidateNonEmpty(req.Password1, "password1"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/auth/registration/", baseURL)
	return do(ctx, httpClient, http.MethodPost, url, req, nil)
}

// Logout invalidates the server-side session.
func Logout(ctx context.Context, httpClient *http.Client, baseURL string) error {
	url := fmt.Sprintf("%s/api/auth/logout/", baseURL)
	return do(ctx, httpClient, http.MethodPost, url, nil, nil)
}

// CurrentUser fetches the authenticated identity.
func CurrentUser(ctx context.Context, httpClient *http.Client, baseURL string) (*types.User, error) {
	var user types.User
	url := fmt.Sprintf("%s/api/auth/user/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
