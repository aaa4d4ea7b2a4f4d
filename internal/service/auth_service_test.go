package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository/memory"
)

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store := memory.New()
	tutor := store.AddUser(domain.User{Name: "Tia", Email: "tia@example.edu", PasswordHash: hash, Permission: domain.PermissionTutor})
	store.AddUser(domain.User{Name: "NoPass", Email: "nopass@example.edu"})

	svc := NewAuthService(config.AuthConfig{JWTSecret: "secret", AccessTokenTTLMinutes: 5}, store.Users())

	user, token, _, err := svc.Login(context.Background(), " TIA@example.edu ", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != tutor.ID {
		t.Fatalf("unexpected user %s", user.ID)
	}
	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != tutor.ID || claims.Permission != domain.PermissionTutor {
		t.Fatalf("unexpected claims %+v", claims)
	}

	failures := []struct{ email, password string }{
		{"tia@example.edu", "wrong"},
		{"ghost@example.edu", "hunter22"},
		{"nopass@example.edu", "anything"},
		{"", "hunter22"},
	}
	for _, f := range failures {
		if _, _, _, err := svc.Login(context.Background(), f.email, f.password); !errors.Is(err, ErrLoginFailed) {
			t.Errorf("%s: expected login failure, got %v", f.email, err)
		}
	}
}
