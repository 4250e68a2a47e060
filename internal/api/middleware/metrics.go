package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware пишет количество и длительность HTTP запросов.
// Путь берется из шаблона маршрута, чтобы ID не раздували кардинальность.
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			m.ObserveHTTPRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
