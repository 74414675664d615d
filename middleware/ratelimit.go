package middleware

import (
	"fmt"
	"net/http"

	"github.com/Aashish23092/ocr-currency-scanner/dto"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// NewLimiter builds an in-memory per-key limiter from a formatted rate such as "60-M".
func NewLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limits requests per client IP. OCR is CPU heavy, so the scan routes sit
// behind it.
func RateLimit(l *limiter.Limiter, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			log.Errorw("Failed to get rate limit context", "ip", ip, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "RATE_LIMIT_FAILED",
				Message: "Internal server error during rate limit check",
				Code:    http.StatusInternalServerError,
			})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(ctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(ctx.Remaining))

		if ctx.Reached {
			log.Warnw("Rate limit exceeded", "ip", ip, "limit", ctx.Limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "RATE_LIMITED",
				Message: "Too many requests. Please try again later.",
				Code:    http.StatusTooManyRequests,
			})
			return
		}

		c.Next()
	}
}

// MaxBodySize caps request bodies before multipart parsing buffers them.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
