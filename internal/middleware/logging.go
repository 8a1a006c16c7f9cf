// middleware/logging.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"kras-kickers/volunteers/internal/logging"
)

type respLogger struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	n, err := l.ResponseWriter.Write(b)
	l.bytes += n
	return n, err
}

// Logging writes request and response details at debug level. Only mounted
// in development; cookies and tokens are masked.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string, len(r.Header))
		for name, vals := range r.Header {
			if strings.EqualFold(name, "Cookie") || strings.EqualFold(name, "Authorization") {
				headers[name] = "***"
				continue
			}
			headers[name] = strings.Join(vals, ",")
		}

		query := r.URL.Query()
		if query.Has("token") {
			query.Set("token", "***")
		}

		logging.Debug("→ request", "method", r.Method, "path", r.URL.Path, "query", query.Encode(), "headers", headers)

		lw := &respLogger{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(lw, r)
		dur := time.Since(start)

		logging.Debug("← response", "status", lw.status, "status_text", http.StatusText(lw.status), "bytes", lw.bytes, "duration", dur.String())
	})
}
