package middleware

import (
	"net/http"
	"sync"
	"time"
)

type window struct {
	hits    int
	resetAt time.Time
}

// RateLimit caps requests per client IP in fixed windows. The shop panel is
// a small single-tenant surface, so an in-process counter is enough; expired
// windows are swept lazily to keep the map from growing unbounded.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*window)
	var lastSweep time.Time

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)
			now := time.Now()

			mu.Lock()
			if now.Sub(lastSweep) > per {
				for ip, win := range windows {
					if now.After(win.resetAt) {
						delete(windows, ip)
					}
				}
				lastSweep = now
			}
			win, ok := windows[key]
			if !ok || now.After(win.resetAt) {
				win = &window{resetAt: now.Add(per)}
				windows[key] = win
			}
			if win.hits >= limit {
				mu.Unlock()
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			win.hits++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
