// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var _ Server = (*server)(nil)

// Server serves the node API over HTTP.
type Server interface {
	// AddRoute exposes [handler] at [base]+[endpoint].
	AddRoute(handler http.Handler, base, endpoint string) error
	// Addr is the address the server listens on.
	Addr() net.Addr
	// Dispatch serves until Shutdown is called, then returns nil.
	Dispatch() error
	Shutdown() error
}

// Config holds the HTTP settings of a [Server].
type Config struct {
	BaseURL string `json:"baseURL"`

	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`

	// AllowedOrigins are passed to CORS. AllowedHosts filters the Host
	// header; empty or "*" allows every host.
	AllowedOrigins []string `json:"allowedOrigins"`
	AllowedHosts   []string `json:"allowedHosts"`
}

func NewDefaultConfig() Config {
	return Config{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		AllowedOrigins:    []string{"*"},
	}
}

type server struct {
	log      logging.Logger
	config   Config
	router   *router
	srv      *http.Server
	listener net.Listener
}

// New wraps the router with host filtering, CORS and gzip, in that order
// from the inside out.
func New(log logging.Logger, listener net.Listener, config Config) Server {
	r := newRouter()
	var handler http.Handler = filterInvalidHosts(r, config.AllowedHosts)
	handler = cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(handler)
	handler = gziphandler.GzipHandler(handler)

	log.Info("API created",
		zap.Strings("allowedOrigins", config.AllowedOrigins),
		zap.Strings("allowedHosts", config.AllowedHosts),
		zap.Stringer("address", listener.Addr()),
	)
	return &server{
		log:    log,
		config: config,
		router: r,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		listener: listener,
	}
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Dispatch() error {
	if err := s.srv.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := s.config.BaseURL + base
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

// Shutdown waits up to the shutdown timeout for open requests, then closes
// whatever is left.
func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	_ = s.srv.Close()
	return err
}
