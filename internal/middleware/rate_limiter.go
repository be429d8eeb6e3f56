package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/wickardo/darksky-forecast-api/internal/config"
	"github.com/wickardo/darksky-forecast-api/internal/model"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and last seen time for a specific IP address.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// coordsVisitor holds the rate limiter and last seen time for a specific IP
// and coordinate pair.
type coordsVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	// globalVisitors maps IP addresses to their visitor struct for global rate limiting.
	globalVisitors = make(map[string]*visitor) // key: ip
	// coordsVisitors maps IP addresses and coordinate pairs to their coordsVisitor struct.
	coordsVisitors = make(map[string]map[string]*coordsVisitor) // key: ip -> "lat,lng" -> visitor
	muGlobal       sync.Mutex
	muCoords       sync.Mutex
)

// getGlobalLimiter returns the rate limiter for the given IP address,
// creating one with the configured global rate/burst if it does not exist.
func getGlobalLimiter(ip string) *rate.Limiter {
	muGlobal.Lock()
	defer muGlobal.Unlock()
	v, exists := globalVisitors[ip]
	if !exists {
		r, burst := config.GetGlobalRateLimiterConfig()
		limiter := rate.NewLimiter(rate.Limit(r/60.0), burst)
		globalVisitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// getCoordsLimiter returns the rate limiter for the given IP address and
// coordinate pair, creating one with the configured per-coordinate
// rate/burst if it does not exist.
func getCoordsLimiter(ip, coords string) *rate.Limiter {
	muCoords.Lock()
	defer muCoords.Unlock()
	if _, ok := coordsVisitors[ip]; !ok {
		coordsVisitors[ip] = make(map[string]*coordsVisitor)
	}
	v, exists := coordsVisitors[ip][coords]
	if !exists {
		r, burst := config.GetCoordsRateLimiterConfig()
		limiter := rate.NewLimiter(rate.Limit(r/60.0), burst)
		coordsVisitors[ip][coords] = &coordsVisitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupGlobalVisitors periodically removes globalVisitors entries that
// have not been seen within the configured cleanup timeout.
func cleanupGlobalVisitors() {
	for {
		time.Sleep(time.Minute)
		timeout := config.GetRateLimiterCleanupTimeout()
		muGlobal.Lock()
		for ip, v := range globalVisitors {
			if time.Since(v.lastSeen) > timeout {
				delete(globalVisitors, ip)
			}
		}
		muGlobal.Unlock()
	}
}

// cleanupCoordsVisitors periodically removes coordsVisitors entries that
// have not been seen within the configured cleanup timeout.
func cleanupCoordsVisitors() {
	for {
		time.Sleep(time.Minute)
		timeout := config.GetRateLimiterCleanupTimeout()
		muCoords.Lock()
		for ip, coordsMap := range coordsVisitors {
			for coords, v := range coordsMap {
				if time.Since(v.lastSeen) > timeout {
					delete(coordsMap, coords)
				}
			}
			if len(coordsMap) == 0 {
				delete(coordsVisitors, ip)
			}
		}
		muCoords.Unlock()
	}
}

// StartRateLimiterCleanup starts background goroutines to clean up stale
// visitors for both the global and the per-coordinate limiters.
func StartRateLimiterCleanup() {
	go cleanupGlobalVisitors()
	go cleanupCoordsVisitors()
}

// ResetVisitors clears all visitor states for both limiters. Used primarily for testing.
func ResetVisitors() {
	muGlobal.Lock()
	for k := range globalVisitors {
		delete(globalVisitors, k)
	}
	muGlobal.Unlock()
	muCoords.Lock()
	for k := range coordsVisitors {
		delete(coordsVisitors, k)
	}
	muCoords.Unlock()
}

// getIP extracts the client's IP address from the HTTP request, considering X-Forwarded-For headers.
func getIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr // fallback
	}
	return ip
}

// getCoords extracts the requested coordinate pair from the query string.
func getCoords(r *http.Request) string {
	lat := r.URL.Query().Get("lat")
	lng := r.URL.Query().Get("lng")
	if lat == "" && lng == "" {
		return ""
	}
	return lat + "," + lng
}

// RateLimitMiddleware returns an HTTP middleware that enforces global and
// per-coordinate rate limiting. If a limit is exceeded, it responds with a
// 429 status and a JSON error message.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)
		coords := getCoords(r)
		if coords == "" {
			// No coordinates on the request, treat as a single bucket
			coords = "__none__"
		}
		globalLimiter := getGlobalLimiter(ip)
		coordsLimiter := getCoordsLimiter(ip, coords)
		if !globalLimiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			errMsg := "Rate limit exceeded: too many requests per minute per user/IP"
			resp := model.Response{
				Error:   &errMsg,
				Message: "Too Many Requests (global limit)",
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		if !coordsLimiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			errMsg := "Rate limit exceeded: too many requests per minute per coordinate per user/IP"
			resp := model.Response{
				Error:   &errMsg,
				Message: "Too Many Requests (per-coordinate limit)",
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		next.ServeHTTP(w, r)
	})
}
