package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bluntdao/blunt_frame/internal/farcaster"
)

const (
	throttledKey    = "frame_throttled"
	rateLimitPrefix = "rl:frame:"
)

// FrameRateLimit counts frame interactions per requester (unsigned fid, or
// IP when the body has none) in one-minute windows. Requests over the limit
// are not rejected; they are marked so the frame handler answers with the
// entry card instead of running a validator check.
func FrameRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 30
	}
	return func(c *fiber.Ctx) error {
		if cache == nil || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		ctx := c.UserContext()
		key := rateLimitPrefix + requesterKey(c)

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		if _, err := cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttl = pipe.TTL(ctx, key)
			return nil
		}); err != nil {
			return c.Next() // fail-open on cache errors
		}
		// A window without expiry would throttle the requester forever.
		if ttl.Val() < 0 {
			if err := cache.Expire(ctx, key, time.Minute).Err(); err != nil {
				cache.Del(ctx, key)
				return c.Next()
			}
		}
		if incr.Val() > int64(maxPerMin) {
			c.Locals(throttledKey, true)
		}
		return c.Next()
	}
}

// Throttled reports whether FrameRateLimit marked the request.
func Throttled(c *fiber.Ctx) bool {
	v, _ := c.Locals(throttledKey).(bool)
	return v
}

func requesterKey(c *fiber.Ctx) string {
	if p, err := farcaster.ParsePacket(c.Body()); err == nil && p.UntrustedData.FID != 0 {
		return "fid:" + strconv.FormatUint(p.UntrustedData.FID, 10)
	}
	return "ip:" + c.IP()
}
