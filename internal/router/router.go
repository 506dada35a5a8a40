package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/config"
	"recipebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/user/create", authHandler.Register)
	api.POST("/user/token", authHandler.Token)
	api.POST("/user/token/refresh", authHandler.Refresh)
	api.POST("/user/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/user/me", authHandler.Me)
	secured.PATCH("/user/me", authHandler.UpdateMe)

	secured.GET("/recipes", recipeHandler.List)
	secured.POST("/recipes", recipeHandler.Create)
	secured.GET("/recipes/:id", recipeHandler.Get)
	secured.PATCH("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)

	secured.GET("/tags", tagHandler.List)
	secured.PATCH("/tags/:id", tagHandler.Update)
	secured.DELETE("/tags/:id", tagHandler.Delete)

	secured.GET("/ingredients", ingredientHandler.List)
	secured.PATCH("/ingredients/:id", ingredientHandler.Update)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
