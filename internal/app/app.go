package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

type Options struct {
	Addr           string
	BasePath       string
	SessionTTL     time.Duration
	SweepInterval  time.Duration
	AllowedOrigins []string
	JWT            *config.JWT
	NewRandom      func() mines.Random
}

func OptionsFromEnv() (Options, error) {
	ttl, err := config.SessionTTL()
	if err != nil {
		return Options{}, err
	}
	jwt, err := config.NewJWT(ttl)
	if err != nil {
		return Options{}, fmt.Errorf("unable to read jwt config: %w", err)
	}
	return Options{
		Addr:           config.Addr(),
		BasePath:       strings.TrimRight(config.BasePath(), "/"),
		SessionTTL:     ttl,
		SweepInterval:  time.Minute,
		AllowedOrigins: config.AllowedOrigins(),
		JWT:            jwt,
	}, nil
}

type App struct {
	logger  *logrus.Logger
	router  *http.ServeMux
	store   *session.Store
	ws      *config.WebSocket
	metrics *metrics.Metrics
	opts    Options
}

func New(logger *logrus.Logger, opts Options) *App {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	store := session.NewStore(opts.SessionTTL)
	app := &App{
		logger:  logger,
		router:  http.NewServeMux(),
		store:   store,
		ws:      config.NewWebSocket(opts.AllowedOrigins),
		metrics: metrics.New(store.Len),
		opts:    opts,
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if a.opts.BasePath != "" {
		root := http.NewServeMux()
		root.Handle(a.opts.BasePath+"/", http.StripPrefix(a.opts.BasePath, a.router))
		h = root
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.opts.JWT),
		middleware.Cors(a.opts.AllowedOrigins),
		middleware.Logging(a.logger),
		middleware.Recover(a.logger),
	)
}

// Start serves until ctx is done or the server fails.
func (a *App) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              a.opts.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return gCtx
		},
	}

	g.Go(func() error {
		a.logger.WithFields(logrus.Fields{
			"addr":      a.opts.Addr,
			"base path": a.opts.BasePath,
		}).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.opts.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
