// Package api assembles the Echo router and Huma operations that make up the
// gateway's HTTP surface.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/ebay-listing-gateway/api/openapi"
	"github.com/donaldgifford/ebay-listing-gateway/internal/api/handlers"
	"github.com/donaldgifford/ebay-listing-gateway/internal/api/middleware"
	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/extract"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
)

// Deps are the components the HTTP surface is built on. Marketplace and
// Extractor are required.
type Deps struct {
	Marketplace ebay.Marketplace
	Extractor   extract.ListingExtractor
	RateLimiter *ebay.RateLimiter
	Quotas      handlers.UpstreamQuotas
	Health      *handlers.HealthHandler
}

// Options tunes the router.
type Options struct {
	Version           string
	AllowedOrigins    []string
	RequestsPerMinute int
	Burst             int
	Logger            *slog.Logger
}

// NewServer builds the Echo instance with all middleware and routes.
func NewServer(deps Deps, opts Options) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	if deps.Health == nil {
		deps.Health = handlers.NewHealthHandler()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))

	if len(opts.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	if opts.RequestsPerMinute > 0 {
		e.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Skipper: opsSkipper,
			Store: echomw.NewRateLimiterMemoryStoreWithConfig(
				echomw.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(opts.RequestsPerMinute) / 60),
					Burst:     opts.Burst,
					ExpiresIn: 3 * time.Minute,
				},
			),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, _ error) error {
				return c.JSON(http.StatusForbidden, handlers.ErrorResponse{Error: "Forbidden"})
			},
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return c.JSON(http.StatusTooManyRequests, handlers.ErrorResponse{Error: "Too many requests"})
			},
		}))
	}

	e.GET("/healthz", deps.Health.Healthz)
	e.GET("/readyz", deps.Health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, handlers.NewAPIConfig(opts.Version))

	handlers.RegisterMarketplaceRoutes(humaAPI, handlers.NewMarketplaceHandler(deps.Marketplace))
	handlers.RegisterAnalyzeRoutes(humaAPI, handlers.NewAnalyzeHandler(deps.Extractor))
	handlers.RegisterAnalyticsRoutes(humaAPI)
	handlers.RegisterQuotaRoutes(humaAPI, handlers.NewQuotaHandler(deps.RateLimiter, deps.Quotas))

	openapi.RegisterRoutes(e, humaAPI.OpenAPI().Info.Title, openapi.DefaultSpecURL)

	return e
}

func opsSkipper(c echo.Context) bool {
	switch c.Path() {
	case "/healthz", "/readyz", "/metrics":
		return true
	}
	return false
}

// errorHandler renders errors that escape the operations: unmatched routes,
// disallowed methods, and unexpected faults.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			log.Error("unhandled error",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
			writeError(c, http.StatusInternalServerError, handlers.ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			})
			return
		}

		switch he.Code {
		case http.StatusNotFound:
			writeError(c, he.Code, handlers.ErrorResponse{Error: "Not found"})
		case http.StatusMethodNotAllowed:
			writeError(c, he.Code, handlers.ErrorResponse{Error: "Method not allowed"})
		default:
			if he.Code >= http.StatusInternalServerError {
				log.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
				writeError(c, he.Code, handlers.ErrorResponse{
					Error:   "Internal server error",
					Message: http.StatusText(he.Code),
				})
				return
			}
			writeError(c, he.Code, handlers.ErrorResponse{Error: http.StatusText(he.Code)})
		}
	}
}

func writeError(c echo.Context, status int, body handlers.ErrorResponse) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
