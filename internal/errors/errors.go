package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when the login identifier or password is wrong.
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	// ErrUserExists is returned when registering a taken username or email.
	ErrUserExists = errors.New("user with this username or email already exists")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNameRequired is returned when a category name is blank.
	ErrCategoryNameRequired = errors.New("category name is required")
	// ErrCategoryExists is returned when a category with the same name already exists.
	ErrCategoryExists = errors.New("category with this name already exists")
	// ErrCategoryNotFound is returned when a category is absent or archived.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrArticleFieldsRequired is returned when title, content or category is blank.
	ErrArticleFieldsRequired = errors.New("title, content and category are required")
	// ErrThumbnailRequired is returned when no thumbnail file is supplied on create.
	ErrThumbnailRequired = errors.New("thumbnail image is required")
	// ErrArticleNotFound is returned when an article is absent or archived.
	ErrArticleNotFound = errors.New("article not found or has been archived")
	// ErrNotArticleOwner is returned when the caller is neither the author nor an admin.
	ErrNotArticleOwner = errors.New("you are not authorized to modify this article")
	// ErrMediaUpload is returned when the media store rejects an upload.
	ErrMediaUpload = errors.New("media upload failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Absent and soft-deleted
// records map to the same NotFound; callers cannot tell them apart.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidRefreshToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case ErrUserExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrCategoryNameRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_NAME_REQUIRED")
	case ErrCategoryExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_ALREADY_EXISTS")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrArticleFieldsRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ARTICLE_FIELDS_REQUIRED")
	case ErrThumbnailRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "THUMBNAIL_REQUIRED")
	case ErrArticleNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ARTICLE_NOT_FOUND")
	case ErrNotArticleOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrMediaUpload:
		return NewHTTPError(http.StatusBadGateway, err.Error(), "MEDIA_UPLOAD_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
