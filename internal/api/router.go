package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nourtech/storefront/docs"
	"github.com/nourtech/storefront/internal/api/handler"
	"github.com/nourtech/storefront/internal/api/middleware"
	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

const (
	apiBodyLimit    = "1M"
	uploadBodyLimit = "8M"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Brands   ports.BrandService
	Products ports.ProductService
	Orders   ports.OrderService
	Contact  ports.ContactService
	Uploads  ports.UploadService

	Sessions    middleware.SessionVerifier
	Revocations ports.RevocationStore

	// Readiness lists the dependencies pinged by GET /health/ready.
	Readiness map[string]handler.PingFunc

	Logger         zerolog.Logger
	CookieSecure   bool
	AllowedOrigins []string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(cors(deps.AllowedOrigins))
	e.Use(middleware.Session(deps.Sessions, deps.Revocations, deps.Logger))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.CookieSecure, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Users)
	brandHandler := handler.NewBrandHandler(deps.Brands)
	productHandler := handler.NewProductHandler(deps.Products)
	laptopHandler := productHandler.ForCategory(domain.TypeLaptop)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	contactHandler := handler.NewContactHandler(deps.Contact)
	uploadHandler := handler.NewUploadHandler(deps.Uploads)

	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireAdmin()

	api := e.Group("/api", echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Limit: apiBodyLimit,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/uploads"
		},
	}))

	// --- Auth routes ---
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	// --- Catalogue ---
	api.GET("/companies", brandHandler.List)
	api.POST("/companies", brandHandler.Create, requireAdmin)
	api.DELETE("/companies/:id", brandHandler.Delete, requireAdmin)

	for prefix, h := range map[string]*handler.ProductHandler{"/products": productHandler, "/laptops": laptopHandler} {
		api.GET(prefix, h.List)
		api.GET(prefix+"/:id", h.Get)
		api.POST(prefix, h.Create, requireAdmin)
		api.PATCH(prefix+"/:id", h.Update, requireAdmin)
		api.DELETE(prefix+"/:id", h.Delete, requireAdmin)
	}

	// --- Orders ---
	api.GET("/orders", orderHandler.List, requireAuth)
	api.POST("/orders", orderHandler.Create, requireAuth)
	api.PATCH("/orders/:id", orderHandler.UpdateStatus, requireAdmin)

	// --- Admin ---
	api.GET("/users", userHandler.List, requireAdmin)
	api.DELETE("/users/:id", userHandler.Delete, requireAdmin)
	api.GET("/contact", contactHandler.Get)
	api.PUT("/contact", contactHandler.Update, requireAdmin)
	api.POST("/uploads", uploadHandler.Upload, requireAdmin, echomiddleware.BodyLimit(uploadBodyLimit))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// cors echoes allowed origins back with credentials. "*" in origins allows
// any origin.
func cors(origins []string) echo.MiddlewareFunc {
	anyOrigin := slices.Contains(origins, "*")
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return anyOrigin || slices.Contains(origins, origin), nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		AllowCredentials: true,
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
