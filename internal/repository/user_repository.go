package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"khabarkhana/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	HasBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error)
	AppendReadingHistory(ctx context.Context, userID, articleID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail finds a user by login identifier.
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether either identity attribute is taken.
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// UpdateRefreshToken replaces the persisted refresh token. Empty revokes it.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// AddBookmark records a bookmark reference.
func (r *userRepository) AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	user := model.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).
		Association("Bookmarks").Append(&model.Article{ID: articleID})
}

// RemoveBookmark drops a bookmark reference.
func (r *userRepository) RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	user := model.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).
		Association("Bookmarks").Delete(&model.Article{ID: articleID})
}

// HasBookmark reports whether the bookmark reference exists.
func (r *userRepository) HasBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("user_bookmarks").
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// ListBookmarks returns the user's bookmarked articles with display relations.
func (r *userRepository) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error) {
	user := model.User{ID: userID}
	var articles []model.Article
	err := r.db.WithContext(ctx).Model(&user).
		Preload("Category", selectCategoryDisplay).
		Association("Bookmarks").Find(&articles)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// AppendReadingHistory records that the user read an article. Re-reads are a no-op.
func (r *userRepository) AppendReadingHistory(ctx context.Context, userID, articleID uuid.UUID) error {
	user := model.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).
		Association("ReadingHistory").Append(&model.Article{ID: articleID})
}
