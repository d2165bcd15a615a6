package web

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"cinematch/models"
	"cinematch/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
	"golang.org/x/time/rate"
)

const sessionCookieName = "cinematch_session"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers",
		"Content-Type, X-Requested-With, HX-Request, HX-Trigger, HX-Target, HX-Current-URL")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware resolves the caller's search controller from the signed
// session cookie, starting a new session when the cookie is missing,
// invalid or refers to an evicted session.
func (a *App) SessionMiddleware(c rweb.Context) error {
	if path := c.Request().Path(); strings.HasPrefix(path, "/static/") || path == "/favicon.ico" || path == "/health" {
		return c.Next()
	}

	var sessionID string
	if raw, err := c.GetCookie(sessionCookieName); err == nil && raw != "" {
		if claims, err := a.Signer.Parse(raw); err == nil {
			sessionID = claims.SessionID
		} else {
			logger.Debug("Ignoring invalid session cookie", "error", err.Error())
		}
	}

	id, sc := a.Sessions.Get(sessionID)
	if id != sessionID {
		token, err := a.Signer.Issue(id)
		if err != nil {
			logger.LogErr(err, "failed to issue session token")
		} else {
			err = c.SetCookieWithOptions(&rweb.Cookie{
				Name:     sessionCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: rweb.SameSiteLaxMode,
			})
			if err != nil {
				logger.LogErr(serr.Wrap(err, "failed to set session cookie"))
			}
		}
	}

	c.Set("session_id", id)
	c.Set(api.ControllerKey, sc)
	c.Set(api.LookupTimeoutKey, a.Config.RequestTimeout)

	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// htmx from unpkg, Font Awesome from cdnjs, posters from any https host
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com",
		"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com",
		"img-src 'self' data: https:",
		"font-src 'self' data: https://cdnjs.cloudflare.com",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// IPRateLimiter hands out a token bucket per client address.
type IPRateLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows perSecond requests per client with the given burst.
// Clients quiet for longer than ttl are forgotten.
func NewIPRateLimiter(perSecond float64, burst int, ttl time.Duration) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		ttl:      ttl,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Cleanup forgets clients not seen since now minus the ttl.
func (l *IPRateLimiter) Cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, ip)
		}
	}
}

// StartCleanup runs Cleanup periodically until stop is closed.
func (l *IPRateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				l.Cleanup(now)
			case <-stop:
				return
			}
		}
	}()
}

// RateLimitMiddleware rejects clients exceeding their token bucket.
func (a *App) RateLimitMiddleware(c rweb.Context) error {
	if a.Limiter == nil {
		return c.Next()
	}

	ip := a.clientIP(c)
	if !a.Limiter.Allow(ip) {
		models.RateLimited.Inc()
		logger.Info("Rate limit exceeded", "ip", ip)
		c.SetStatus(http.StatusTooManyRequests)
		return nil
	}
	return c.Next()
}

// clientIP is the peer address of the connection. Forwarding headers are
// honored only when the peer is a configured trusted proxy.
func (a *App) clientIP(c rweb.Context) string {
	remoteIP := remoteHost(c)
	if !a.trustedProxies[remoteIP] {
		return remoteIP
	}

	if xff := requestHeader(c, "X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(requestHeader(c, "X-Real-IP"))); ip != nil {
		return ip.String()
	}
	return remoteIP
}

func remoteHost(c rweb.Context) string {
	conn := c.GetConn()
	if conn == nil || conn.RemoteAddr() == nil {
		return "unknown"
	}
	addr := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// requestHeader looks up a request header ignoring case. Go clients send
// canonical names such as Hx-Request and HTTP/2 hops send lowercase.
func requestHeader(c rweb.Context, key string) string {
	for _, h := range c.Request().Headers() {
		if strings.EqualFold(h.Key, key) {
			return h.Value
		}
	}
	return ""
}

// isHTMX reports whether the request came from htmx.
func isHTMX(c rweb.Context) bool {
	return requestHeader(c, "HX-Request") != ""
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", remoteHost(c),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
