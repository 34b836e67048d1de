package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hackforge/hackathon-service/internal/auth"
	"github.com/hackforge/hackathon-service/internal/observability"
	"github.com/hackforge/hackathon-service/internal/ratelimit"
	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
}

// RateLimit rejects callers that exceed limit hits per window. keyFn
// returning "" exempts the request.
func RateLimit(limiter ratelimit.Limiter, scope string, keyFn func(*fiber.Ctx) string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		key := keyFn(c)
		if key == "" {
			return c.Next()
		}
		if !limiter.Allow(c.UserContext(), scope+":"+key, limit, window) {
			return apperrors.NewTooManyRequests("too many requests, try again later")
		}
		return c.Next()
	}
}

// ClientIP keys a limit by remote address.
func ClientIP(c *fiber.Ctx) string {
	return c.IP()
}

// PrincipalID keys a limit by authenticated account.
func PrincipalID(c *fiber.Ctx) string {
	if p, ok := auth.PrincipalFromContext(c); ok {
		return p.ID
	}
	return c.IP()
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				}
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed",
						zap.String("method", c.Method()),
						zap.String("path", c.Path()),
						zap.String("code", domainErr.Code),
						zap.Any("details", domainErr.Details),
						zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}
