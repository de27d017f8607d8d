package auth

import (
	"errors"
	"strings"
)

type RegisterDTO struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID *int64 `json:"companyId,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	if dto.Name == "" || dto.Email == "" || dto.Password == "" {
		return errors.New("name, email and password are required")
	}
	if !strings.Contains(dto.Email, "@") {
		return errors.New("invalid email address")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" || dto.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}

// LoginResponse mirrors what the SPA expects after login: tokens plus the
// user fields it needs to render the navbar and admin links.
type LoginResponse struct {
	AuthTokens
	User UserInfo `json:"user"`
}

type UserInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleID    int64  `json:"roleId"`
	CompanyID *int64 `json:"companyId,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	RoleID  int64  `json:"roleId"`
}
