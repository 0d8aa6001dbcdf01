package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router wraps the standard library mux; no third-party router is
// needed for this surface.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// ServeHTTP tags every request with an id and logs its outcome.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	r.mux.ServeHTTP(recorder, req)
	r.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", recorder.status),
		zap.Duration("duration", time.Since(start)),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RegisterAPIRoutes wires the read API and the reload trigger.
func (r *Router) RegisterAPIRoutes(h *Handler) {
	r.Handle("/api/properties", requireMethod(http.MethodGet, h.GetProperties))
	r.Handle("/api/properties/export", requireMethod(http.MethodGet, h.ExportProperties))
	r.Handle("/api/properties/", requireMethod(http.MethodGet, h.GetPropertyEmployees))
	r.Handle("/api/regions", requireMethod(http.MethodGet, h.GetRegions))
	r.Handle("/api/search", requireMethod(http.MethodGet, h.Search))
	r.Handle("/api/reload", requireMethod(http.MethodPost, h.Reload))
	r.Handle("/healthz", requireMethod(http.MethodGet, h.Health))
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, req)
	}
}
