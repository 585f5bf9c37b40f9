package middleware

import (
	"time"

	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per client IP, e.g. RateLimit(5, time.Minute) for
// five per minute. State is in-process, matching the session store.
func RateLimit(limit int64, period time.Duration) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
