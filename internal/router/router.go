package router // package router defines how HTTP routes are registered for the API

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/handler"
	"github.com/iliyamo/electramart-api/internal/middleware"
	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/service"
)

// Deps is everything the HTTP layer needs.  Redis may be nil, which turns
// rate limiting and caching off.
type Deps struct {
	Cfg       config.Config
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
	Log       *logrus.Logger
	Redis     *redis.Client
	Registry  *prometheus.Registry
	Health    map[string]handler.Pinger

	Auth    *service.AuthService
	Catalog *service.CatalogService
	Support *service.SupportService
	Profile *service.ProfileService
}

// New builds the echo instance with the global middleware and every route.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: d.Cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.Secure())
	if d.Registry != nil {
		e.Use(middleware.NewMetrics(d.Registry).Middleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	RegisterRoutes(e, d.Health)
	RegisterAuth(e, handler.NewAuthHandler(d.Auth), middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	onChange := func(ctx context.Context) {
		if _, err := middleware.PurgeCache(ctx, d.Redis, d.Cache.Prefix); err != nil {
			d.Log.WithError(err).Warn("cache purge failed")
		}
	}
	RegisterProducts(e, handler.NewProductHandler(d.Catalog, onChange), d.Cfg,
		middleware.NewRedisCache(d.Cache, d.Redis, d.Log))
	RegisterServices(e, handler.NewSupportHandler(d.Support), d.Cfg.JWTSecret)
	RegisterUsers(e, handler.NewUserHandler(d.Profile), d.Cfg.JWTSecret)
	return e
}

// RegisterRoutes registers routes that do not belong to the API groups.
func RegisterRoutes(e *echo.Echo, deps map[string]handler.Pinger) {
	e.GET("/healthz", handler.Health(deps))
}

// RegisterAuth registers /api/auth.  Every route is credential handling, so
// the whole group sits behind the rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/forgotPassword", a.ForgotPassword)
	g.POST("/newPassword", a.NewPassword)
	g.POST("/adminLogin", a.AdminLogin)
}

// RegisterProducts registers /api/products.  Listings are cached; adding a
// product needs a token and, when configured, a writer usertype.
func RegisterProducts(e *echo.Echo, p *handler.ProductHandler, cfg config.Config, cache echo.MiddlewareFunc) {
	g := e.Group("/api/products")
	g.GET("", p.All, cache)
	g.GET("/", p.All, cache)
	g.GET("/medicines", p.ByType(model.ProductTypeMedicine), cache)
	g.GET("/healthcare", p.ByType(model.ProductTypeHealthcare), cache)
	g.GET("/pharmaceutical", p.ByType(model.ProductTypePharmaceutical), cache)

	writers := []echo.MiddlewareFunc{middleware.JWTAuth(cfg.JWTSecret)}
	if len(cfg.ProductWriters) > 0 {
		writers = append(writers, middleware.RequireUsertype(cfg.ProductWriters...))
	}
	g.POST("/newProduct", p.Create, writers...)
	g.POST("/:id", p.Get)
}

// RegisterServices registers /api/services: signed-in users submit, the
// listings are open.
func RegisterServices(e *echo.Echo, s *handler.SupportHandler, jwtSecret string) {
	g := e.Group("/api/services")
	auth := middleware.JWTAuth(jwtSecret)
	g.POST("/query", s.Query, auth)
	g.POST("/transaction", s.Transaction, auth)
	g.GET("/allqueries", s.AllQueries)
	g.GET("/alltransactions", s.AllTransactions)
}

// RegisterUsers registers /api/users.  Reads are public (passwords are never
// serialised); writes and profile details need a token.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")
	auth := middleware.JWTAuth(jwtSecret)
	g.GET("", u.List)
	g.POST("/updateprofile", u.UpdateProfile, auth)
	g.POST("/profilepic", u.ProfilePic, auth)
	g.POST("/profiledetails", u.ProfileDetails, auth)
	g.GET("/:id", u.Get)
}
