package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
	"khabarkhana/internal/service"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List godoc
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Case-insensitive title search"
// @Param category query string false "Category slug"
// @Success 200 {object} service.ArticleList
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	list, err := h.articleService.List(c.Request().Context(), service.ListArticlesInput{
		Search:       c.QueryParam("search"),
		CategorySlug: c.QueryParam("category"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, list)
}

// GetBySlug godoc
// @Summary Fetch a published article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} model.Article
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	viewer := auth.CurrentUser(c) // nil for anonymous readers
	article, err := h.articleService.GetBySlug(c.Request().Context(), c.Param("slug"), viewer)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, article)
}

// CreateArticleRequest represents the multipart fields of an article submission.
type CreateArticleRequest struct {
	Title      string `form:"title" validate:"required"`
	Content    string `form:"content" validate:"required"`
	CategoryID string `form:"category_id" validate:"required,uuid4"`
	Tags       string `form:"tags"`
	IsFeatured bool   `form:"is_featured"`
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Body content"
// @Param category_id formData string true "Category ID"
// @Param tags formData string false "Comma-separated tags"
// @Param is_featured formData bool false "Featured flag"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	thumbnail, closeThumbnail, err := formFileUpload(c, "thumbnail")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid thumbnail upload")
	}
	if closeThumbnail != nil {
		defer closeThumbnail()
	}

	author := auth.CurrentUser(c)
	article, err := h.articleService.Create(c.Request().Context(), author, service.CreateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: categoryID,
		Tags:       req.Tags,
		IsFeatured: req.IsFeatured,
		Thumbnail:  thumbnail,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, article)
}

// Update godoc
// @Summary Partially update an article
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Param title formData string false "Title"
// @Param content formData string false "Body content"
// @Param category_id formData string false "Category ID"
// @Param tags formData string false "Comma-separated tags"
// @Param is_featured formData bool false "Featured flag"
// @Param status formData string false "DRAFT or PUBLISHED (publish rights required)"
// @Param thumbnail formData file false "Replacement thumbnail"
// @Success 200 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{articleId} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("articleId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid article ID",
			Code:  "INVALID_UUID",
		})
	}

	var in service.UpdateArticleInput
	if v := c.FormValue("title"); v != "" {
		in.Title = &v
	}
	if v := c.FormValue("content"); v != "" {
		in.Content = &v
	}
	if v := c.FormValue("category_id"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid category ID",
				Code:  "INVALID_UUID",
			})
		}
		in.CategoryID = &categoryID
	}
	if v := c.FormValue("tags"); v != "" {
		in.Tags = &v
	}
	if v := c.FormValue("is_featured"); v != "" {
		featured, _ := strconv.ParseBool(v)
		in.IsFeatured = &featured
	}
	if v := c.FormValue("status"); v != "" {
		status := model.ArticleStatus(v)
		in.Status = &status
	}

	thumbnail, closeThumbnail, err := formFileUpload(c, "thumbnail")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid thumbnail upload")
	}
	if closeThumbnail != nil {
		defer closeThumbnail()
	}
	in.Thumbnail = thumbnail

	caller := auth.CurrentUser(c)
	article, err := h.articleService.Update(c.Request().Context(), articleID, caller, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, article)
}

// Archive godoc
// @Summary Soft-delete an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{articleId} [delete]
func (h *ArticleHandler) Archive(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("articleId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid article ID",
			Code:  "INVALID_UUID",
		})
	}

	caller := auth.CurrentUser(c)
	if err := h.articleService.Archive(c.Request().Context(), articleID, caller); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "article moved to archive",
	})
}
