package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const clientGCThreshold = 1000

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles login attempts per client IP. It exists to slow
// credential stuffing; it is not a substitute for the undifferentiated 401.
type LoginRateLimiter struct {
	rpm     int
	mu      sync.Mutex
	clients map[string]*rateClient
}

func NewLoginRateLimiter(rpm int) *LoginRateLimiter {
	if rpm <= 0 {
		rpm = 10
	}
	return &LoginRateLimiter{rpm: rpm, clients: map[string]*rateClient{}}
}

func (m *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}

func (m *LoginRateLimiter) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.clients[ip]
	if !ok {
		client = &rateClient{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm),
		}
		m.clients[ip] = client
		m.gcLocked()
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

func (m *LoginRateLimiter) gcLocked() {
	if len(m.clients) < clientGCThreshold {
		return
	}
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range m.clients {
		if client.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}
