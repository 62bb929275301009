package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/glass/internal/server"
	"github.com/desertthunder/glass/internal/services"
	"github.com/desertthunder/glass/internal/session"
	"github.com/desertthunder/glass/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// tlsFiles names the certificate and key to serve HTTPS with.
type tlsFiles struct {
	cert string
	key  string
}

// enabled reports whether both files were given. One without the other means plain HTTP.
func (t tlsFiles) enabled() bool {
	return t.cert != "" && t.key != ""
}

func (t tlsFiles) scheme() string {
	if t.enabled() {
		return "https"
	}
	return "http"
}

// Serve loads the configuration and runs the web server until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFromCommand(cmd)
	if err != nil {
		return err
	}

	tls := tlsFiles{cert: cmd.String("cert"), key: cmd.String("key")}
	if !tls.enabled() && (tls.cert != "" || tls.key != "") {
		r.logger.Warn("both --cert and --key are required for HTTPS, serving plain HTTP")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Server.Addr(), err)
	}

	return r.serve(ctx, config, ln, tls, cmd.Bool("open"))
}

// buildHandler wires the provider, session store and router for config.
//
// The returned close function releases the session store.
func (r *Runner) buildHandler(ctx context.Context, config *shared.Config, secure bool) (http.Handler, session.CloseFunc, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	provider, err := services.NewSpotifyService(config.Credentials.Spotify, config.Provider, r.httpClient)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := session.NewStore(ctx, config, r.logger)
	if err != nil {
		return nil, nil, err
	}

	router, err := server.New(server.Options{
		Config:   config,
		Provider: provider,
		Sessions: session.NewManager(config.Session, secure, store),
		Logger:   r.logger,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	return router, closeStore, nil
}

// serve runs the server on ln until ctx is done, then shuts down gracefully.
func (r *Runner) serve(ctx context.Context, config *shared.Config, ln net.Listener, tls tlsFiles, open bool) error {
	handler, closeStore, err := r.buildHandler(ctx, config, tls.enabled())
	if err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			r.logger.Warn("failed to close session store", "error", err)
		}
	}()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          r.logger.StandardLog(),
	}

	homeURL := fmt.Sprintf("%s://%s/", tls.scheme(), displayAddr(ln.Addr()))
	r.writePlain("%s", banner(homeURL, config.Session.Store))

	errc := make(chan error, 1)
	go func() {
		if tls.enabled() {
			errc <- srv.ServeTLS(ln, tls.cert, tls.key)
		} else {
			errc <- srv.Serve(ln)
		}
	}()

	if open {
		if err := shared.OpenBrowser(ctx, homeURL); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// displayAddr swaps an unspecified listen host for localhost so the printed URL is clickable.
func displayAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
