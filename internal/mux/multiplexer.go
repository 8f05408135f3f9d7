package mux

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/soheilhy/cmux"

	"jobly/internal/config"
	"jobly/internal/grpc/server"
	"jobly/internal/logging"
)

// Multiplexer serves gRPC and HTTP/1 on one port, routing by protocol
type Multiplexer struct {
	cfg    *config.Config
	logger logging.Logger

	// Servers
	grpcServer *server.Server
	httpServer *http.Server

	// Multiplexer
	mux      cmux.CMux
	listener net.Listener

	wg sync.WaitGroup
}

// NewMultiplexer creates a new protocol multiplexer. grpcServer may be nil,
// in which case only HTTP is served.
func NewMultiplexer(cfg *config.Config, logger logging.Logger, grpcServer *server.Server, httpHandler http.Handler) *Multiplexer {
	return &Multiplexer{
		cfg:        cfg,
		logger:     logger,
		grpcServer: grpcServer,
		httpServer: &http.Server{
			Handler:           httpHandler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       cfg.Server.IdleTimeout,
		},
	}
}

// Start listens on address and serves until Stop
func (m *Multiplexer) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return m.Serve(listener)
}

// Serve starts both servers on an existing listener and returns immediately
func (m *Multiplexer) Serve(listener net.Listener) error {
	m.listener = listener
	m.mux = cmux.New(listener)

	address := listener.Addr().String()

	// Match gRPC first; everything else falls through to HTTP/1
	if m.grpcServer != nil {
		grpcListener := m.mux.MatchWithWriters(
			cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"),
		)

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if err := m.grpcServer.Start(grpcListener); err != nil && !errors.Is(err, cmux.ErrListenerClosed) {
				m.logger.WithError(err).Error("gRPC server failed")
			}
		}()
	}

	httpListener := m.mux.Match(cmux.HTTP1Fast(), cmux.Any())

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.logger.Info("Starting HTTP server", map[string]interface{}{"address": address})
		if err := m.httpServer.Serve(httpListener); err != nil &&
			!errors.Is(err, http.ErrServerClosed) && !errors.Is(err, cmux.ErrListenerClosed) {
			m.logger.WithError(err).Error("HTTP server failed")
		}
	}()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.mux.Serve(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, cmux.ErrServerClosed) {
			m.logger.WithError(err).Error("Multiplexer failed")
		}
	}()

	m.logger.Info("Multiplexer started successfully", map[string]interface{}{"address": address})
	return nil
}

// Stop gracefully shuts down both servers and the listener
func (m *Multiplexer) Stop(ctx context.Context) error {
	m.logger.Info("Stopping multiplexer...")

	var shutdownErr error
	if err := m.httpServer.Shutdown(ctx); err != nil {
		m.logger.WithError(err).Error("HTTP server shutdown failed")
		shutdownErr = err
	}

	if m.grpcServer != nil {
		m.grpcServer.Stop()
	}

	if m.mux != nil {
		m.mux.Close()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Multiplexer stopped gracefully")
	case <-ctx.Done():
		m.logger.Warn("Multiplexer shutdown timed out")
		return ctx.Err()
	}

	return shutdownErr
}

// Addr returns the address the multiplexer is listening on
func (m *Multiplexer) Addr() string {
	if m.listener != nil {
		return m.listener.Addr().String()
	}
	return ""
}
