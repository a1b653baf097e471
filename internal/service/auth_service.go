package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

const bcryptCost = 10

// HashPassword hashes a plaintext password with the fixed cost factor.
// It is called explicitly wherever a plaintext password enters the system
// (registration, password change) and nowhere else, so an already-hashed
// value is never re-hashed on unrelated updates.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// TokenPair bundles the two token classes returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, fullName, password string) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (*TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{users: users, jwtService: jwtService}
}

// Register creates a new user with hashed password and the default role.
func (s *authService) Register(ctx context.Context, username, email, fullName, password string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, errors.ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates by username or email and issues a token pair.
// The refresh token is persisted on the user row for later verification.
func (s *authService) Login(ctx context.Context, identifier, password string) (*TokenPair, *model.User, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, nil, errors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	user.RefreshToken = ""
	return pair, user, nil
}

// Refresh rotates the token pair. The presented refresh token must match the
// one persisted for the user; rotation replaces it.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, errors.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the persisted refresh token.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.users.UpdateRefreshToken(ctx, userID, "")
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return errors.ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
