package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/config"
	"khabarkhana/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *auth.Middleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	articleHandler *handler.ArticleHandler,
	categoryHandler *handler.CategoryHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/users/register", authHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.POST("/users/refresh", authHandler.Refresh)
	api.GET("/articles", articleHandler.List)
	api.GET("/articles/:slug", articleHandler.GetBySlug, authMW.ResolveOptionalUser)
	api.GET("/categories", categoryHandler.List)

	// Secured routes: echo-jwt validates the token (cookie first, then
	// bearer header), ResolveUser loads the identity behind it.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(auth.AccessClaims) },
		SigningKey:    []byte(cfg.AccessTokenSecret),
		TokenLookup:   "cookie:" + auth.AccessTokenCookie + ",header:" + echo.HeaderAuthorization + ":Bearer ",
	}), authMW.ResolveUser)

	secured.POST("/users/logout", authHandler.Logout)
	secured.POST("/users/change-password", authHandler.ChangePassword)
	secured.GET("/users/me", userHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateProfile)
	secured.GET("/users/bookmarks", userHandler.ListBookmarks)
	secured.POST("/users/bookmarks/:articleId", userHandler.ToggleBookmark)

	secured.POST("/articles", articleHandler.Create)
	secured.PATCH("/articles/:articleId", articleHandler.Update)
	secured.DELETE("/articles/:articleId", articleHandler.Archive)

	// Admin-gated routes
	secured.POST("/categories", categoryHandler.Create, auth.RequireAdmin)
	secured.PATCH("/categories/:categoryId", categoryHandler.Rename, auth.RequireAdmin)
	secured.DELETE("/categories/:categoryId", categoryHandler.Archive, auth.RequireAdmin)
	secured.GET("/admin/stats", adminHandler.Stats, auth.RequireAdmin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
