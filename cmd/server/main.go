package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cenkalti/backoff/v5"
	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-postlogin-service/channels"
	"github.com/jrsteele09/go-postlogin-service/internal/config"
	"github.com/jrsteele09/go-postlogin-service/internal/logger"
	"github.com/jrsteele09/go-postlogin-service/postlogin"
	"github.com/jrsteele09/go-postlogin-service/server"
	"github.com/jrsteele09/go-postlogin-service/sessions/redisrepo"
	"github.com/jrsteele09/go-postlogin-service/token"
	"github.com/jrsteele09/go-postlogin-service/verifier"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool   `help:"Enable debug logging."`
		Port    string `help:"Listen port, overrides PORT." default:""`
		Version kong.VersionFlag
	}
)

func main() {
	kong.Parse(&cli, kong.Vars{"version": version})

	log := logger.Setup(cli.Debug || config.New().GetEnv() == "DEV")

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg := config.New()
	displayAppname(cfg.GetAppName())

	client, err := redisrepo.NewClient(cfg)
	if err != nil {
		return errors.Wrap(err, "redisrepo.NewClient")
	}
	defer client.Close()

	sessionRepo := redisrepo.New(client)

	// The store must be up before we serve; transient startup failures are
	// retried, request-path calls never are.
	ctx := context.Background()
	if _, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, sessionRepo.Ping(ctx)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5)); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	log.Info().Msg("redis connection established")

	secret := cfg.GetJWTSecret()
	if secret == "" {
		return errors.New("JWT_SECRET is not defined")
	}

	issuer := token.NewIssuer(token.NewHMACSigner(secret), cfg.GetTokenExpiry())
	smeVerifier := verifier.NewSMEClient(cfg, log)

	service, err := postlogin.NewService(postlogin.Repos{
		Sessions: sessionRepo,
		Channels: channels.NewStaticRepo(),
	}, issuer, smeVerifier, cfg.GetSessionTTL(), log)
	if err != nil {
		return errors.Wrap(err, "postlogin.NewService")
	}

	addr := cfg.GetPort()
	if cli.Port != "" {
		addr = ":" + cli.Port
	}

	httpServer := &http.Server{Addr: addr, Handler: server.New(cfg, service, log)}
	go listenAndServe(httpServer, log)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
