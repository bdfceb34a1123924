package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"digimart/internal/auth"
	"digimart/internal/handler"
	"digimart/internal/repository"
)

// Register wires routes and middleware. Three tiers: public (catalog, auth),
// authenticated (submit payment, dashboard), admin (catalog mutations and the
// payment review queue).
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	paymentHandler *handler.PaymentHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/products", productHandler.List)

	// Authenticated routes: bearer token plus a fresh user lookup.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup: "header:" + echo.HeaderAuthorization,
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				return jwtService.ValidateToken(tokenString)
			},
		}),
		auth.CurrentUser(userRepo),
	)

	secured.POST("/payments/submit", paymentHandler.Submit)
	secured.GET("/dashboard", dashboardHandler.Get)

	// Admin routes
	admin := secured.Group("", auth.RequireAdmin)

	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)

	admin.GET("/admin/payments/pending", paymentHandler.ListPending)
	admin.GET("/admin/payments/approved", paymentHandler.ListApproved)
	admin.PUT("/admin/payments/:id/approve", paymentHandler.Approve)
	admin.PUT("/admin/payments/:id/reject", paymentHandler.Reject)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
