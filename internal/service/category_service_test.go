package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActiveBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCategoryService_Create(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name          string
		categoryName  string
		setupMock     func(*MockCategoryRepository)
		expectedSlug  string
		expectedError error
	}{
		{
			name:         "successful creation",
			categoryName: "Tech & Science",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByName", mock.Anything, "Tech & Science").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedSlug: "tech-science",
		},
		{
			name:          "blank name",
			categoryName:  "   ",
			setupMock:     func(m *MockCategoryRepository) {},
			expectedError: errors.ErrCategoryNameRequired,
		},
		{
			name:         "name already taken",
			categoryName: "Politics",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByName", mock.Anything, "Politics").Return(&model.Category{
					ID:   uuid.New(),
					Name: "politics",
				}, nil)
			},
			expectedError: errors.ErrCategoryExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo, nil)
			category, err := service.Create(context.Background(), tt.categoryName, ownerID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, category)
				assert.Equal(t, tt.expectedSlug, category.Slug)
				assert.Equal(t, &ownerID, category.OwnerID)
				assert.False(t, category.IsArchived)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Rename(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name          string
		newName       string
		setupMock     func(*MockCategoryRepository)
		expectedSlug  string
		expectedError error
	}{
		{
			name:    "successful rename regenerates slug",
			newName: "World News",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID:   categoryID,
					Name: "Politics",
					Slug: "politics",
				}, nil)
				m.On("FindByName", mock.Anything, "World News").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedSlug: "world-news",
		},
		{
			name:    "renaming to own name is allowed",
			newName: "Politics",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID:   categoryID,
					Name: "Politics",
					Slug: "politics",
				}, nil)
				m.On("FindByName", mock.Anything, "Politics").Return(&model.Category{
					ID:   categoryID,
					Name: "Politics",
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedSlug: "politics",
		},
		{
			name:    "name taken by another category",
			newName: "Sports",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID:   categoryID,
					Name: "Politics",
				}, nil)
				m.On("FindByName", mock.Anything, "Sports").Return(&model.Category{
					ID:   uuid.New(),
					Name: "Sports",
				}, nil)
			},
			expectedError: errors.ErrCategoryExists,
		},
		{
			name:    "category not found",
			newName: "World News",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCategoryNotFound,
		},
		{
			name:          "blank name",
			newName:       "",
			setupMock:     func(m *MockCategoryRepository) {},
			expectedError: errors.ErrCategoryNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo, nil)
			category, err := service.Rename(context.Background(), categoryID, tt.newName)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.newName, category.Name)
				assert.Equal(t, tt.expectedSlug, category.Slug)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Archive(t *testing.T) {
	categoryID := uuid.New()

	t.Run("archives an active category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:   categoryID,
			Name: "Politics",
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
			return c.IsArchived
		})).Return(nil)

		service := NewCategoryService(mockRepo, nil)
		category, err := service.Archive(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.True(t, category.IsArchived)
		mockRepo.AssertExpectations(t)
	})

	t.Run("already archived is a no-op", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:         categoryID,
			Name:       "Politics",
			IsArchived: true,
		}, nil)

		service := NewCategoryService(mockRepo, nil)
		category, err := service.Archive(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.True(t, category.IsArchived)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("category not found", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCategoryService(mockRepo, nil)
		_, err := service.Archive(context.Background(), categoryID)

		assert.Equal(t, errors.ErrCategoryNotFound, err)
	})
}

func TestCategoryService_ListActive(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("ListActive", mock.Anything).Return([]model.Category{
		{ID: uuid.New(), Name: "Politics", Slug: "politics"},
		{ID: uuid.New(), Name: "Sports", Slug: "sports"},
	}, nil)

	service := NewCategoryService(mockRepo, nil)
	categories, err := service.ListActive(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "politics", categories[0].Slug)
	mockRepo.AssertExpectations(t)
}
