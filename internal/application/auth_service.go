package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/danuarts/woodshop/internal/domain/repository"
	"github.com/danuarts/woodshop/pkg/helpers"
)

// ErrInvalidCredentials covers every login failure. Unknown username
// and wrong password deliberately collapse into the same error so the
// caller cannot tell whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo   repo.AdminRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.AdminRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// Login verifies the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	a, err := s.Repo.GetByUsername(ctx, username)
	if err != nil || a == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(a.ID, a.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("admin_id", a.ID).Error("generate token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
