package server

import (
	"net/http"
	"strings"
)

// DefaultAllowedOrigins are the browser origins the service accepts.
// A "*." host label matches any subdomain.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3001",
	"https://*.vercel.app",
	"https://*.railway.app",
	"https://*.netlify.app",
	"https://*.netlify.com",
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, pattern := range allowed {
		if pattern == origin {
			return true
		}
		scheme, host, ok := strings.Cut(pattern, "://*.")
		if !ok {
			continue
		}
		prefix := scheme + "://"
		if !strings.HasPrefix(origin, prefix) {
			continue
		}
		rest := strings.TrimPrefix(origin, prefix)
		if strings.HasSuffix(rest, "."+host) && len(rest) > len(host)+1 && !strings.ContainsAny(rest, "/:") {
			return true
		}
	}
	return false
}

func withCORS(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin, allowed) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				} else {
					h.Set("Access-Control-Allow-Headers", "Content-Type")
				}
			}
		}
		if r.Method == http.MethodOptions {
			if origin != "" && !originAllowed(origin, allowed) {
				http.Error(w, "Disallowed CORS origin", http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
