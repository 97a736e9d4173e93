package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/internal/modules/user/dto"
	"anoa.com/ecoinsight/internal/modules/user/repository"
	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

var (
	errStoreUnavailable = apperror.New(http.StatusServiceUnavailable,
		"Database connection unavailable. Please try again later.", apperror.ErrUpstreamUnavailable)
	errMissingSecret = apperror.New(http.StatusInternalServerError,
		"Server configuration error. Please contact administrator.", apperror.ErrConfiguration)
	errBadCredentials = apperror.New(http.StatusBadRequest,
		"Invalid email or password.", apperror.ErrInvalidInput)
	errEmailTaken = apperror.New(http.StatusBadRequest,
		"Email already registered.", apperror.ErrConflict)
)

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if err := s.preflight(ctx); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	log.Printf("🌱 New user registered: %s", user.ID)
	return s.buildAuthResponse(user, "User registered successfully.")
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if err := s.preflight(ctx); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errBadCredentials
	}

	return s.buildAuthResponse(user, "Login successful.")
}

// preflight fails fast when the store is down or tokens cannot be signed.
func (s *authService) preflight(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		log.Printf("❌ user store unreachable: %v", err)
		return errStoreUnavailable
	}
	if s.secret == "" {
		log.Println("❌ JWT_SECRET is not set")
		return errMissingSecret
	}
	return nil
}

func (s *authService) buildAuthResponse(user *entity.User, message string) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:   message,
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User: dto.PublicUser{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			EcoPoints: user.EcoPoints,
		},
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
