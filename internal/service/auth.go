package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/hash"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/tokens"
	"github.com/google/uuid"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        models.User
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, apperr.Unauthenticated("Invalid credentials")
	}

	issued, err := tokens.IssueAccessToken(user.ID.String(), string(user.Role), user.Name, user.Email, s.TokenTTL, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	record := models.NewAccessToken(issued.JTI, user.ID, issued.ExpiresAt)
	if err := s.Repo.CreateAccessToken(ctx, &record); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}

	return &LoginResult{AccessToken: issued.Token, ExpiresAt: issued.ExpiresAt, User: *user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.Repo.GetUser(ctx, userID)
}

// Logout revokes every token the user holds, not only the one presented.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.RevokeUserTokens(ctx, userID)
}

func (s *AuthService) TokenActive(ctx context.Context, jti string) (bool, error) {
	return s.Repo.TokenActive(ctx, jti)
}

type StaffAccount struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

var DefaultStaff = []StaffAccount{
	{Name: "Test Pelayan", Email: "pelayan@email.test", Password: "passPelayan", Role: models.RolePelayan},
	{Name: "Test Kasir", Email: "kasir@email.test", Password: "passKasir", Role: models.RoleKasir},
}

// Seed creates the given accounts, skipping emails that already exist, and
// returns how many were created.
func (s *AuthService) Seed(ctx context.Context, accounts []StaffAccount) (int, error) {
	created := 0
	for _, a := range accounts {
		if !a.Role.Valid() {
			return created, apperr.Validation(fmt.Sprintf("unknown role %q for %s", a.Role, a.Email))
		}
		pwHash, err := hash.HashPassword(a.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		u := models.NewUser(a.Name, strings.ToLower(a.Email), pwHash, a.Role)
		ok, err := s.Repo.CreateUserIfNotExists(ctx, &u)
		if err != nil {
			return created, fmt.Errorf("create %s: %w", a.Email, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
