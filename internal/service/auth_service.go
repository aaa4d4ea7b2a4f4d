package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// AuthService handles local password login. Users themselves are managed
// by the identity side; this service only reads them.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", time.Time{}, ErrLoginFailed
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if user.PasswordHash == "" {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Permission)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}
