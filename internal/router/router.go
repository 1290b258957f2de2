package router

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/budget-desk/backend/api"
	"github.com/budget-desk/backend/internal/budgetclient"
	"github.com/budget-desk/backend/internal/controllers/healthz"
	"github.com/budget-desk/backend/internal/controllers/root"
	v1 "github.com/budget-desk/backend/internal/controllers/v1"
	"github.com/budget-desk/backend/internal/controllers/version"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X .../router.buildVersion=<version>".
var buildVersion = "0.0.0"

// Config creates the gin engine with all middlewares.
//
// The returned teardown function must be called when the engine is
// not used anymore.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	r := gin.New()

	// Client IPs are not processed
	r.ForwardedByClientIP = false

	// Send HTTP 405 for paths that have a handler, but not for the method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister prometheus metrics")
		}
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.Use(ErrorsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "this HTTP method is not allowed for the endpoint you called"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "there is no resource for the path you requested"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing, it clutters the test logs
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// No client IPs are processed, no proxy needs to be trusted
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", buildVersion).Msg("Router")

	api.SwaggerInfo.Host = url.Host
	api.SwaggerInfo.BasePath = url.Path
	api.SwaggerInfo.Version = buildVersion

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(group *gin.RouterGroup) {
	root.RegisterRoutes(group.Group(""))
	healthz.RegisterRoutes(group.Group("/healthz"))
	version.RegisterRoutes(group.Group("/version"), buildVersion)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1.Configure(lookupFromEnv(), enforceLimitFromEnv(), sessionIdleTimeoutFromEnv())
	v1.RegisterRoutes(group.Group("/v1"))
}

// lookupFromEnv returns the remote lookup client if BUDGET_LOOKUP_URL is set.
// Otherwise, budget figures are looked up in the database.
func lookupFromEnv() reallocation.Lookup {
	lookupURL, ok := os.LookupEnv("BUDGET_LOOKUP_URL")
	if !ok || lookupURL == "" {
		return nil
	}

	client, err := budgetclient.New(lookupURL, 10*time.Second)
	if err != nil {
		log.Error().Err(err).Str("url", lookupURL).Msg("BUDGET_LOOKUP_URL is invalid, using the database")
		return nil
	}

	log.Debug().Str("url", lookupURL).Msg("using remote budget lookup")
	return client
}

// enforceLimitFromEnv reads ENFORCE_MASTER_BUDGET_LIMIT, which defaults to true.
func enforceLimitFromEnv() bool {
	value, ok := os.LookupEnv("ENFORCE_MASTER_BUDGET_LIMIT")
	if !ok {
		return true
	}

	enforce, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Str("value", value).Msg("ENFORCE_MASTER_BUDGET_LIMIT is not a boolean, enforcing the limit")
		return true
	}
	return enforce
}

// defaultSessionIdleTimeout is used when SESSION_IDLE_TIMEOUT is not set.
const defaultSessionIdleTimeout = 30 * time.Minute

// sessionIdleTimeoutFromEnv reads SESSION_IDLE_TIMEOUT as a duration, e.g. "45m".
// "0" keeps sessions until they are closed.
func sessionIdleTimeoutFromEnv() time.Duration {
	value, ok := os.LookupEnv("SESSION_IDLE_TIMEOUT")
	if !ok {
		return defaultSessionIdleTimeout
	}

	idle, err := time.ParseDuration(value)
	if err != nil || idle < 0 {
		log.Error().Str("value", value).Dur("default", defaultSessionIdleTimeout).Msg("SESSION_IDLE_TIMEOUT is not a valid duration, using the default")
		return defaultSessionIdleTimeout
	}
	return idle
}

// ExpireSessions discards idle reallocation sessions once a minute
// until ctx is done.
func ExpireSessions(ctx context.Context) {
	v1.ExpireSessions(ctx, time.Minute)
}
