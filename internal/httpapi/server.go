package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	apimw "urlmonitor/internal/httpapi/middleware"
	"urlmonitor/internal/monitor"
	"urlmonitor/internal/repo"
)

type Server struct {
	Logger  *zap.Logger
	Monitor *monitor.Service
	Results repo.ResultStore
}

func NewServer(l *zap.Logger, svc *monitor.Service, rs repo.ResultStore) *Server {
	return &Server{Logger: l, Monitor: svc, Results: rs}
}

// RouterOptions carries the boundary-layer knobs; zero values mean allow-all
// CORS and no rate limiting.
type RouterOptions struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	RateBurst       int
}

func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	if len(opts.AllowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	r.Use(apimw.RateLimit(opts.RateLimitPerMin, opts.RateBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/monitor", s.handleMonitor)
		r.Get("/results", s.handleListResults)
		r.Get("/results/search", s.handleSearchResults)
		r.Get("/results/filter/healthy", s.handleFiltered(true))
		r.Get("/results/filter/unhealthy", s.handleFiltered(false))
		r.Get("/results/{id}", s.handleGetResult)
		r.Delete("/results/{id}", s.handleDeleteResult)
		r.Get("/stats", s.handleStats)
	})

	return r
}
