// Package server exposes the notation engine over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/format"
	"github.com/rapidmidiex/xentui/interval"
	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/rapidmidiex/xentui/rtt"
	"github.com/rs/cors"
)

const statsWindow = 256

type (
	Server struct {
		handler  http.Handler
		logger   *slog.Logger
		cfg      atomic.Pointer[config.Config]
		parser   atomic.Pointer[chord.Parser]
		upgrader websocket.Upgrader
		timings  *rtt.Window
	}

	Option func(*Server)
)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds the API around cfg. Allowed origins are read once; every other
// setting follows SetConfig.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		logger:  slog.Default(),
		timings: rtt.NewWindow(statsWindow),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetConfig(cfg)

	origins := cfg.Server.AllowedOrigins
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
	})
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(origins, r.Header.Get("Origin"))
		},
	}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.logRequests)
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/chord", s.handleChord).Methods(http.MethodGet)
	api.HandleFunc("/keys/auto/{n}", s.handleAutoKeys).Methods(http.MethodGet)
	api.HandleFunc("/keys/gap", s.handleGapKeys).Methods(http.MethodGet)
	api.HandleFunc("/hertz", s.handleHertz).Methods(http.MethodGet)
	api.HandleFunc("/exponential", s.handleExponential).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWS)

	s.handler = c.Handler(router)
	return s
}

// SetConfig swaps the active configuration. Requests in flight finish with
// the configuration they started with.
func (s *Server) SetConfig(cfg config.Config) {
	s.cfg.Store(&cfg)
	s.parser.Store(chord.New(cfg.ChordConfig()))
}

func (s *Server) Config() config.Config { return *s.cfg.Load() }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config().Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (s *Server) parseChord(text string) ([]interval.Interval, error) {
	start := time.Now()
	defer func() { s.timings.Add(time.Since(start)) }()

	c, err := s.parser.Load().Parse(text)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Server) autoKeys(n int) (keycolors.Colors, error) {
	if n > keycolors.MaxKeys {
		return nil, fmt.Errorf("%d keys: %w", n, keycolors.ErrDivisions)
	}
	colors := keycolors.Auto(n)
	if colors == nil {
		return keycolors.Colors{}, nil
	}
	return colors, nil
}

// gapKeys colours the configured keyboard when generator is empty. A given
// generator brings its own division. Zero white keys fall back to the
// configured count.
func (s *Server) gapKeys(generator string, whiteKeys, offset int) (keycolors.Colors, error) {
	k := s.Config().Keyboard
	k.Layout = config.LayoutGap
	if whiteKeys != 0 {
		k.WhiteKeys = whiteKeys
	}
	k.Offset = offset
	if generator == "" {
		return k.Colors(s.parser.Load())
	}
	g, err := config.ParseGenerator(generator, s.parser.Load())
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return keycolors.Gap(g, k.WhiteKeys, k.Offset)
}

func (s *Server) formatter() format.Formatter {
	f := format.Default
	f.FractionDigits = s.Config().Format.FractionDigits
	return f
}

// originAllowed mirrors the CORS policy for WebSocket upgrades, which browsers
// do not preflight.
func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
