package providers

import (
	"artfolio/internal/structures"
	"net/http"
	"time"
)

// UnroutedEndpoint labels requests for paths no route is registered for,
// so probing unknown urls does not create new series.
const UnroutedEndpoint = "other"

// responseRecorder keeps the first status written to the client.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.status = http.StatusOK
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware counts and times requests per registered route url.
func MetricsMiddleware(metrics MetricsProviderInterface, routes []structures.Route, next http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route.Url] = struct{}{}
	}
	endpointOf := func(r *http.Request) string {
		if _, ok := known[r.URL.Path]; ok {
			return r.URL.Path
		}
		return UnroutedEndpoint
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := endpointOf(r)
		metrics.IncRequestsTotal(endpoint, rec.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
