package metrics

import (
	"net/http"
	"regexp"
	"time"
)

// Path normalization patterns, compiled once at package init time.
// These keep label cardinality bounded regardless of how many posts,
// uploads, or contacts exist.
var (
	slugSegment   = regexp.MustCompile(`(/slug)/[^/]+`)
	postSegment   = regexp.MustCompile(`(/posts)/[0-9a-fA-F-]{36}`)
	uploadSegment = regexp.MustCompile(`(/uploads)/[^/]+`)
)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter
func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called before writing body
func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// Middleware returns an HTTP middleware that records Prometheus metrics for each request.
// It tracks:
// - Request count by method, path, and status code
// - Request duration (latency)
// - Panics are recorded as 500 status codes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		startTime := time.Now()

		defer func() {
			duration := time.Since(startTime).Seconds()

			statusCode := recorder.statusCode
			if statusCode == 0 {
				statusCode = http.StatusInternalServerError
			}

			normalizedPath := normalizePath(r.URL.Path)

			statusStr := http.StatusText(statusCode)
			if statusStr == "" {
				statusStr = "UNKNOWN"
			}

			RecordRequest(r.Method, normalizedPath, statusStr)
			RecordRequestDuration(r.Method, normalizedPath, statusStr, duration)

			if err := recover(); err != nil {
				// Record the failure, write 500 if nothing was sent yet,
				// and swallow the panic
				if !recorder.written {
					recorder.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(recorder, r)
	})
}

// normalizePath takes a request path and returns a normalized version for use as a metric label.
// This prevents cardinality explosion from unique IDs in paths.
// Examples:
//
//	/api/blog/posts/7f0c...e1 -> /api/blog/posts/:id
//	/api/blog/posts/slug/hello-world -> /api/blog/posts/slug/:slug
//	/uploads/ab12.png -> /uploads/:file
func normalizePath(path string) string {
	path = slugSegment.ReplaceAllString(path, "$1/:slug")
	path = postSegment.ReplaceAllString(path, "$1/:id")
	path = uploadSegment.ReplaceAllString(path, "$1/:file")
	return path
}
