package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kirovest/sales-app/utils"
)

// AuthService performs the login exchange and hands the resulting credential
// to the session gate.
type AuthService struct {
	api *APIClient
}

func NewAuthService(api *APIClient) *AuthService {
	return &AuthService{api: api}
}

type loginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

// LoginData is the successful POST /auth/login payload.
type LoginData struct {
	Token    string `json:"token"`
	RoleName string `json:"role_name"`
	User     struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login exchanges credentials for a token and stores token and role into the
// session. The credentials are sent verbatim; nothing is hashed client-side.
func (s *AuthService) Login(ctx context.Context, emailOrUsername, password string) (*LoginData, error) {
	if emailOrUsername == "" || password == "" {
		return nil, utils.NewValidationError("missing credentials")
	}

	env, err := s.api.post(ctx, "/auth/login", loginRequest{
		EmailOrUsername: emailOrUsername,
		Password:        password,
	}, false)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var data LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	if data.Token == "" || data.RoleName == "" {
		return nil, utils.NewProtocolError(errors.New("missing token or role in response"))
	}

	if err := s.api.Session.Login(data.RoleName, data.Token); err != nil {
		return nil, err
	}

	utils.InfoLogger.Infof("login succeeded for user %q (role %s)", data.User.Name, data.RoleName)
	return &data, nil
}
