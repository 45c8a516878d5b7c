package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CorrelationHeader carries the client-chosen idempotency key.
const CorrelationHeader = "X-Correlation-ID"

// IdempotencyMiddleware replays the stored response when a mutating request
// repeats an X-Correlation-ID within ttl. Keys are scoped to the
// authenticated user, so it must run after VerifyToken.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPatch && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		correlationID := c.Get(CorrelationHeader)
		if correlationID == "" {
			return c.Next()
		}

		key := fmt.Sprintf("idempotency:%s:%s", GetUserID(c), correlationID)

		cached, err := redisClient.Get(c.UserContext(), key).Bytes()
		if err == nil && len(cached) > 0 {
			c.Set("X-Idempotent-Replay", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Only successful responses are replayed
		statusCode := c.Response().StatusCode()
		if statusCode < 200 || statusCode >= 300 {
			return nil
		}
		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Set(ctx, key, body, ttl).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to store idempotent response")
		}
		return nil
	}
}
