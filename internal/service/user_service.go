package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"khabarkhana/internal/errors"
	"khabarkhana/internal/media"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

// FileUpload is a pending media upload handed down from a multipart request.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
}

// UserService exposes profile and bookmark operations.
type UserService interface {
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate, avatar *FileUpload) (*model.User, error)
	ToggleBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error)
}

type userService struct {
	users repository.UserRepository
	media media.Store
}

// NewUserService builds a UserService with repository and media store.
func NewUserService(users repository.UserRepository, media media.Store) UserService {
	return &userService{users: users, media: media}
}

// Profile returns the user with credential fields stripped.
func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	user.RefreshToken = ""
	return user, nil
}

// UpdateProfile applies only the supplied fields. A new avatar runs through
// the media store first; the password hash is never touched here.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate, avatar *FileUpload) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if avatar != nil {
		url, err := s.media.Upload(ctx, avatar.Filename, avatar.Content)
		if err != nil {
			return nil, errors.ErrMediaUpload
		}
		user.Avatar = url
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	user.PasswordHash = ""
	user.RefreshToken = ""
	return user, nil
}

// ToggleBookmark adds the article to the user's bookmarks, or removes it when
// already present. Returns true when the bookmark was added.
func (s *userService) ToggleBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	bookmarked, err := s.users.HasBookmark(ctx, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	if bookmarked {
		return false, s.users.RemoveBookmark(ctx, userID, articleID)
	}
	return true, s.users.AddBookmark(ctx, userID, articleID)
}

// ListBookmarks returns the user's bookmarked articles.
func (s *userService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error) {
	return s.users.ListBookmarks(ctx, userID)
}
