package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/sahilchouksey/studyshare-api/utils/response"
)

const (
	// IdempotencyHeader carries a client generated key for create requests
	IdempotencyHeader = "Idempotency-Key"

	// DefaultIdempotencyTTL is how long a key is remembered
	DefaultIdempotencyTTL = 10 * time.Minute
)

// IdempotencyGuard rejects a repeated create request carrying a key that was
// already seen within the TTL. Requests without the header pass through.
type IdempotencyGuard struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewIdempotencyGuard(c cache.Cache, ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyGuard{cache: c, ttl: ttl}
}

func (g *IdempotencyGuard) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(IdempotencyHeader)
		if key == "" || g.cache == nil {
			return c.Next()
		}
		if len(key) > 128 {
			return response.BadRequest(c, "Idempotency-Key must be at most 128 characters")
		}

		lockKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Method(), c.Route().Path, key)
		acquired, err := g.cache.SetNX(c.Context(), lockKey, "1", g.ttl)
		if err != nil {
			// Cache outages must not block uploads
			log.Warnf("idempotency check failed for %s: %v", lockKey, err)
			return c.Next()
		}
		if !acquired {
			return response.Error(c, fiber.StatusConflict,
				"A request with this Idempotency-Key was already received", "DUPLICATE_REQUEST")
		}

		err = c.Next()
		// A rejected request may be retried with the same key
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if delErr := g.cache.Delete(c.Context(), lockKey); delErr != nil {
				log.Warnf("failed to release idempotency key %s: %v", lockKey, delErr)
			}
		}
		return err
	}
}
