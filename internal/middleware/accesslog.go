package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func AccessLog(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rr := &responseRecorder{ResponseWriter: w, status: 200}
			next.ServeHTTP(rr, r)

			logger.Infow("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.status,
				"remote", r.RemoteAddr,
				"duration", time.Since(start),
			)
		})
	}
}
