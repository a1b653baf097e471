package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockUserRepository) HasBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *MockUserRepository) AppendReadingHistory(ctx context.Context, userID, articleID uuid.UUID) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		fullName      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "reader",
			email:    "reader@example.com",
			fullName: "Regular Reader",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "reader", "reader@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "identifier normalized before lookup",
			username: "  Reader  ",
			email:    "Reader@Example.com",
			fullName: "Regular Reader",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "reader", "reader@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username or email taken",
			username: "taken",
			email:    "taken@example.com",
			fullName: "Existing User",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "taken", "taken@example.com").Return(true, nil)
			},
			expectedError: errors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestJWTService())
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.fullName, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, "reader", user.Username)
				assert.Equal(t, "reader@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.Empty(t, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("ExistsByUsernameOrEmail", mock.Anything, "reader", "reader@example.com").Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		stored := args.Get(1).(*model.User)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.True(t, VerifyPassword("password123", stored.PasswordHash))
	}).Return(nil)

	service := NewAuthService(mockRepo, newTestJWTService())
	_, err := service.Register(context.Background(), "reader", "reader@example.com", "Regular Reader", "password123")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	hash, _ := HashPassword("password123")

	tests := []struct {
		name          string
		identifier    string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:       "successful login by username",
			identifier: "reader",
			password:   "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "reader").Return(&model.User{
					ID:           userID,
					Username:     "reader",
					Email:        "reader@example.com",
					PasswordHash: hash,
					Role:         model.RoleUser,
				}, nil)
				m.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:       "unknown identifier",
			identifier: "nobody",
			password:   "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "reader",
			password:   "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "reader").Return(&model.User{
					ID:           userID,
					Username:     "reader",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestJWTService())
			pair, user, err := service.Login(context.Background(), tt.identifier, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pair)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.NotNil(t, user)
				assert.Empty(t, user.PasswordHash)
				assert.Empty(t, user.RefreshToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	validToken, err := jwtService.GenerateRefreshToken(userID)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful rotation",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					Username:     "reader",
					RefreshToken: validToken,
				}, nil)
				m.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "malformed token",
			token:         "not-a-jwt",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidRefreshToken,
		},
		{
			name:  "token does not match persisted one",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					RefreshToken: "some-other-token",
				}, nil)
			},
			expectedError: errors.ErrInvalidRefreshToken,
		},
		{
			name:  "revoked token",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					RefreshToken: "",
				}, nil)
			},
			expectedError: errors.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, jwtService)
			pair, err := service.Refresh(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdateRefreshToken", mock.Anything, userID, "").Return(nil)

	service := NewAuthService(mockRepo, newTestJWTService())
	err := service.Logout(context.Background(), userID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	hash, _ := HashPassword("old-password")

	tests := []struct {
		name          string
		oldPassword   string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "successful change",
			oldPassword: "old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					PasswordHash: hash,
				}, nil)
				m.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "wrong old password",
			oldPassword: "not-the-old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:           userID,
					PasswordHash: hash,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:        "user not found",
			oldPassword: "old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestJWTService())
			err := service.ChangePassword(context.Background(), userID, tt.oldPassword, "new-password")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
