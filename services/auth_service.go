package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/config"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/store"
	"github.com/Rajeshwar-203/fitness-ai-backend/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	users      store.UserStore
	secret     string
	ttl        time.Duration
	bcryptCost int
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewAuthService(users store.UserStore, cfg config.AuthConfig, m *metrics.Metrics, log *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		secret:     cfg.JWTSecret,
		ttl:        cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		metrics:    m,
		log:        log,
	}
}

// Signup creates the account and returns a token plus the display name.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, string, error) {
	email = utils.NormalizeEmail(email)

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return "", "", apperrors.DuplicateIdentity("Email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", "", apperrors.Internal("failed to look up user", err)
	}

	hashed, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", "", apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{Name: strings.TrimSpace(name), Email: email, Password: hashed}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", "", apperrors.DuplicateIdentity("Email already exists")
		}
		return "", "", apperrors.Internal("failed to create user", err)
	}
	s.metrics.UserRegistered()
	s.log.Info("user signed up", zap.String("email", email))

	token, err := utils.GenerateJWT(s.secret, email, s.ttl)
	if err != nil {
		return "", "", apperrors.Internal("could not generate token", err)
	}
	return token, user.Name, nil
}

// Login checks credentials. Unknown email and wrong password stay distinct.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", apperrors.NotFound("User not found")
		}
		return "", "", apperrors.Internal("failed to look up user", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", "", apperrors.InvalidCredential("Incorrect password")
	}

	token, err := utils.GenerateJWT(s.secret, user.Email, s.ttl)
	if err != nil {
		return "", "", apperrors.Internal("could not generate token", err)
	}
	return token, user.Name, nil
}

// Profile is the public view of a signed-up user.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *AuthService) Profile(ctx context.Context, email string) (*Profile, error) {
	user, err := s.users.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("failed to look up user", err)
	}
	return &Profile{Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

// Authenticate resolves a bearer token to the email it was issued for.
func (s *AuthService) Authenticate(token string) (string, error) {
	email, err := utils.ParseJWT(s.secret, token)
	if err != nil {
		return "", apperrors.Unauthorized("invalid token").WithCause(err)
	}
	return email, nil
}

