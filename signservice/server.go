package signservice

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jrsteele09/go-kin-bridge/internal/config"
	"github.com/jrsteele09/go-kin-bridge/token"
)

// Server is the HTTP signing service a bridge's RemoteSigner talks to.
type Server struct {
	env      string
	config   config.Config
	signer   *token.KeyPairSigner
	metrics  *metrics
	routes   []string
	router   http.Handler
	maxBytes int64
}

func New(cfg config.Config, signer *token.KeyPairSigner) *Server {
	s := &Server{
		env:      cfg.GetEnv(),
		config:   cfg,
		signer:   signer,
		metrics:  newMetrics(),
		maxBytes: cfg.GetMaxRequestBytes(),
	}
	s.router = s.buildRouter()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(s.RequestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(s.CorsMiddleware)

	r.Get(RouteHealthz, s.Healthz())
	r.Get(RouteJWKS, s.JWKS())
	r.Method(http.MethodGet, RouteMetrics, s.metrics.handler())
	r.With(s.AuthHeaderMiddleware).Post(RouteSign, s.Sign())
	r.With(s.AuthHeaderMiddleware).Post(RouteIntrospect, s.Introspect())

	s.routes = []string{
		http.MethodGet + " " + RouteHealthz,
		http.MethodGet + " " + RouteJWKS,
		http.MethodGet + " " + RouteMetrics,
		http.MethodPost + " " + RouteSign,
		http.MethodPost + " " + RouteIntrospect,
	}
	return r
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, _ := strings.Cut(route, " ")
		logRoute(method, path)
	}
}
