// Package server is the thin HTTP wrapper around the postlogin service:
// routing, request decoding, and error-to-status translation. No business
// logic lives here.
package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-postlogin-service/internal/config"
	"github.com/jrsteele09/go-postlogin-service/postlogin"
)

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	service *postlogin.Service
	logger  zerolog.Logger
}

func New(cfg config.Config, service *postlogin.Service, logger zerolog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		service: service,
		logger:  logger,
		env:     cfg.GetEnv(),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logger.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.logger.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
