// Package auth contiene los DTOs de la API de autenticación.
package auth

import (
	"time"

	"github.com/dropDatabas3/bizflow/internal/identity"
)

// CredentialsRequest es el body de signup y login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest permite enviar el refresh token en el body; si falta se usa la cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse es la identidad pública.
type UserResponse struct {
	User identity.User `json:"user"`
}

// SessionResponse es el resultado de login y refresh.
type SessionResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	RefreshToken string        `json:"refresh_token"`
	User         identity.User `json:"user"`
}

// FromSession arma la respuesta; now se usa para expires_in.
func FromSession(s *identity.Session, now time.Time) SessionResponse {
	exp := int64(s.AccessExpiresAt.Sub(now).Seconds())
	if exp < 0 {
		exp = 0
	}
	return SessionResponse{
		AccessToken:  s.AccessToken,
		TokenType:    "Bearer",
		ExpiresIn:    exp,
		RefreshToken: s.RefreshToken,
		User:         s.User,
	}
}
