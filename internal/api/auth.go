package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/docchat/docchat-cli/internal/errs"
	"github.com/docchat/docchat-cli/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. Empty fields are rejected locally.
func (g *Gateway) Register(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", errs.ErrValidation)
	}
	return g.doPublic(ctx, http.MethodPost, "/api/register/", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}

// Login authenticates and returns the issued token pair.
func (g *Gateway) Login(ctx context.Context, username, password string) (model.Credentials, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.Credentials{}, fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}
	var creds model.Credentials
	if err := g.doPublic(ctx, http.MethodPost, "/api/login/", loginRequest{Username: username, Password: password}, &creds); err != nil {
		return model.Credentials{}, err
	}
	return creds, nil
}
