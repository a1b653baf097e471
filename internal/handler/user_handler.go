package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/errors"
	"khabarkhana/internal/service"
)

// UserHandler handles profile and bookmark endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := auth.CurrentUser(c)
	profile, err := h.userService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param full_name formData string false "Full name"
// @Param bio formData string false "Bio"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := auth.CurrentUser(c)

	var update service.ProfileUpdate
	if v := c.FormValue("full_name"); v != "" {
		update.FullName = &v
	}
	if v := c.FormValue("bio"); v != "" {
		update.Bio = &v
	}

	avatar, closeAvatar, err := formFileUpload(c, "avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid avatar upload")
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, update, avatar)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// ToggleBookmark godoc
// @Summary Bookmark or un-bookmark an article
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/bookmarks/{articleId} [post]
func (h *UserHandler) ToggleBookmark(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("articleId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid article ID",
			Code:  "INVALID_UUID",
		})
	}

	user := auth.CurrentUser(c)
	added, err := h.userService.ToggleBookmark(c.Request().Context(), user.ID, articleID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bookmarked": added,
	})
}

// ListBookmarks godoc
// @Summary List the current user's bookmarked articles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Article
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/bookmarks [get]
func (h *UserHandler) ListBookmarks(c echo.Context) error {
	user := auth.CurrentUser(c)
	bookmarks, err := h.userService.ListBookmarks(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// formFileUpload opens an optional multipart file field. The returned closer
// is nil when the field is absent.
func formFileUpload(c echo.Context, field string) (*service.FileUpload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		// absent field, not an error
		return nil, nil, nil
	}
	src, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.FileUpload{Filename: header.Filename, Content: src}, func() { _ = src.Close() }, nil
}
