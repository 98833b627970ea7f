package middleware

import (
	"errors"
	"net"
	"net/http"
	"staffdir/shared"
	"staffdir/shared/cache"
	"staffdir/shared/constant"
	"staffdir/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// unlimitedPaths are polled by probes and scrapers and never count against a client.
var unlimitedPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := unlimitedPaths[r.URL.Path]; skip || !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			userAgent := a.getUA(r)
			clientIP := a.getClientIP(r)
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP, userAgent)

			var count int

			err := a.cache.Get(r.Context(), cacheKey, &count)

			switch {
			case errors.Is(err, cache.Nil):
				count = 1
			case err != nil:
				a.passThrough(w, r, next, err)

				return
			default:
				count++
			}

			if count > maxReqs {
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(windowSecs))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				a.passThrough(w, r, next, err)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

// passThrough serves the request unthrottled when the counter store is unavailable.
func (a *appMiddleware) passThrough(w http.ResponseWriter, r *http.Request, next http.Handler, err error) {
	log.Warn().Err(err).Str("path", r.URL.Path).Msg("rate limiter unavailable")
	next.ServeHTTP(w, r)
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// getClientIP prefers the first proxy hop, then X-Real-IP, then the socket peer.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
