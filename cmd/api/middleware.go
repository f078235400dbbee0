// cmd/api/middleware.go
// This file contains HTTP middleware used to wrap the router.
// Middleware functions intercept every request before it reaches a handler.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

type contextKey string

const requestIDKey contextKey = "requestID"

// requestIDFrom returns the id stored by requestID, or "".
func requestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// recoverPanic turns a panic in a downstream handler into a 500 response
// instead of a dropped connection.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with the client's X-Request-Id, or a fresh
// UUID when none was sent, and echoes it back in the response.
func (app *applicationDependencies) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// logRequests writes one access log line per request.
func (app *applicationDependencies) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		app.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestIDFrom(r),
		)
	})
}

// enableCORS allows cross-origin requests from the trusted origins. "*"
// trusts every origin. Preflight requests are answered here.
func (app *applicationDependencies) enableCORS(next http.Handler) http.Handler {
	allowAll := false
	trusted := make(map[string]bool, len(app.config.cors.trustedOrigins))
	for _, origin := range app.config.cors.trustedOrigins {
		if origin == "*" {
			allowAll = true
		}
		trusted[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if origin == "" || !(allowAll || trusted[origin]) {
			next.ServeHTTP(w, r)
			return
		}

		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// client holds a per-IP rate limiter and the time it was last seen.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientTable maps client IPs to their limiters.
type clientTable struct {
	mu      sync.Mutex
	clients map[string]*client
}

// evictLoop removes clients idle for longer than maxIdle, checking every
// interval, until done is closed.
func (ct *clientTable) evictLoop(done <-chan struct{}, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ct.mu.Lock()
			for ip, c := range ct.clients {
				if time.Since(c.lastSeen) > maxIdle {
					delete(ct.clients, ip)
				}
			}
			ct.mu.Unlock()
		}
	}
}

// allow reports whether ip may make another request, creating its limiter
// on first sight.
func (ct *clientTable) allow(ip string, rps float64, burst int) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	// Create a new limiter for this IP if we have not seen it before.
	if _, found := ct.clients[ip]; !found {
		ct.clients[ip] = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	}
	ct.clients[ip].lastSeen = time.Now()

	// Allow() consumes one token; returns false if the bucket is empty.
	return ct.clients[ip].limiter.Allow()
}

// rateLimit implements per-IP token-bucket rate limiting. Entries not seen
// for 3 minutes are evicted by a background goroutine that stops when the
// application shuts down.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	if !app.config.limiter.enabled {
		return next
	}

	table := &clientTable{clients: make(map[string]*client)}
	go table.evictLoop(app.shutdown, time.Minute, 3*time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract just the IP from the RemoteAddr (strips the port).
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if !table.allow(ip, app.config.limiter.rps, app.config.limiter.burst) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
