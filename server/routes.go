package server

import "github.com/jrsteele09/go-postlogin-service/verifier"

const (
	RouteInitSession = "/postlogin/init-session"
	RouteRenewToken  = "/postlogin/renew-token"
	RouteHealth      = "/postlogin/health"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+RouteInitSession, ChainMiddleware(s.InitSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteRenewToken, ChainMiddleware(s.RenewTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// A stand-in for the external validation authority, served only in DEV
	// so the service can verify against itself locally.
	if s.env == "DEV" {
		s.RegisterRouteFunc("POST "+verifier.ValidateSessionPath, ChainMiddleware(s.MockValidateSessionHandler(), s.APIMiddleware()...))
	}
}
