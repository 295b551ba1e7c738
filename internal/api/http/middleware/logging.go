package middleware

import (
	"net/http"
	"time"

	"github.com/dtroode/premium-server/internal/logger"
)

// Logging logs every HTTP request and its outcome.
type Logging struct {
	proxies *TrustedProxies
	logger  *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(proxies *TrustedProxies, logger *logger.Logger) *Logging {
	return &Logging{proxies: proxies, logger: logger}
}

// Handler logs method, path, status and duration for each request.
func (l *Logging) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", l.proxies.ClientIP(r),
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			l.logger.Error("HTTP request failed", attrs...)
		case rec.status >= http.StatusBadRequest:
			l.logger.Warn("HTTP request rejected", attrs...)
		default:
			l.logger.Info("HTTP request completed", attrs...)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
