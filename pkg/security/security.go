package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS 中间件 仅允许白名单中的Origin，支持Credentials。白名单含 "*" 时放行所有来源
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (allowAll || originSet[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Secure 中间件
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 防止MIME嗅探
		c.Header("X-Content-Type-Options", "nosniff")
		// 防止点击劫持
		c.Header("X-Frame-Options", "DENY")
		// 接口不需要把来源页泄露给第三方
		c.Header("Referrer-Policy", "no-referrer")
		// HSTS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// visitor 包装限流器和最后活跃时间，用于定期清理
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors 按客户端 IP 保存令牌桶
type visitors struct {
	mu    sync.Mutex
	m     map[string]*visitor
	every rate.Limit
	burst int
}

func (vs *visitors) get(key string, now time.Time) *rate.Limiter {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	v, ok := vs.m[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vs.every, vs.burst)}
		vs.m[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep 删除 expiry 内没有请求的条目
func (vs *visitors) sweep(now time.Time, expiry time.Duration) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	for ip, v := range vs.m {
		if now.Sub(v.lastSeen) > expiry {
			delete(vs.m, ip)
		}
	}
}

// sweepLoop 定期清理过期条目，ctx 结束时返回
func (vs *visitors) sweepLoop(ctx context.Context, interval, expiry time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			vs.sweep(now, expiry)
		}
	}
}

// RateLimiter 限流中间件 按IP限流，每个窗口最多 maxRequests 次，自动清理过期条目。
// maxRequests 或 window 非正数时不限流。清理协程在 ctx 结束时退出
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	vs := &visitors{
		m:     make(map[string]*visitor),
		every: rate.Every(window / time.Duration(maxRequests)),
		burst: maxRequests,
	}

	go vs.sweepLoop(ctx, time.Minute, max(window*3, time.Minute))

	retryAfter := strconv.Itoa(max(int((window / time.Duration(maxRequests)).Seconds()), 1))

	return func(c *gin.Context) {
		if !vs.get(c.ClientIP(), time.Now()).Allow() {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
