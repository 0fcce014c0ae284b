// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net"

	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/deppfellow/qna-api/internal/middleware"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
//
// Middleware order matters: the request id must exist before the
// request-scoped logger is built, the New Relic transaction before either
// reads its trace ids, and the rate limiter runs last so rejected
// requests are still logged.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.IPExtractor = ipExtractor(s.Config.Server.TrustedProxies)

	// "/questions/" and "/questions" resolve to the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerQuestionRoutes(router, h)
	registerAnswerRoutes(router, h)

	return router
}

// ipExtractor decides what c.RealIP() returns, which keys the rate
// limiter and the ip log field.
//
// Without trusted proxies the TCP peer address is used and forwarding
// headers are ignored. With them, X-Forwarded-For is walked from the
// right and only hops inside the listed networks are skipped.
func ipExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		options = append(options, echo.TrustIPRange(network))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}
