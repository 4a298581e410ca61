package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"shortlink-insight/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// 客户端限流器的空闲回收周期
const clientIdleTTL = 10 * time.Minute

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit 按客户端 IP 的令牌桶限流中间件
func RateLimit(limitConfig *config.Limit) gin.HandlerFunc {
	if !limitConfig.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	perSecond := rate.Limit(float64(limitConfig.Requests) / 60.0)
	burst := int(limitConfig.Burst)

	var mu sync.Mutex
	clients := make(map[string]*rateLimitClient)

	// 定期清理长时间没有请求的客户端
	go func() {
		ticker := time.NewTicker(clientIdleTTL)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > clientIdleTTL {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		ip := c.ClientIP()
		mu.Lock()
		client, ok := clients[ip]
		if !ok {
			client = &rateLimitClient{limiter: rate.NewLimiter(perSecond, burst)}
			clients[ip] = client
		}
		client.lastSeen = time.Now()
		allowed := client.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
