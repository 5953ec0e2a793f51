package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tabsgo/bridge"
	"tabsgo/hostbridge"
)

// App is the host process: it answers bridge requests on the Unix socket and
// serves the page together with its WebSocket bridge.
type App struct {
	cfg      *Config
	platform Platform
	router   *hostRouter
	log      logrus.FieldLogger

	ready chan string
}

// NewApp creates the host app.
func NewApp(cfg *Config, platform Platform, log logrus.FieldLogger) *App {
	return &App{
		cfg:      cfg,
		platform: platform,
		router:   &hostRouter{versions: cfg.Versions},
		log:      log,
		ready:    make(chan string, 1),
	}
}

// Ready delivers the page URL once both servers are listening.
func (a *App) Ready() <-chan string {
	return a.ready
}

// Run starts both servers and blocks until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting host")

	bs, err := bridge.NewBridgeServer(a.cfg.SocketPath, a.router, a.log)
	if err != nil {
		return fmt.Errorf("failed to start bridge server: %w", err)
	}
	a.log.WithField("socket", bs.Addr()).Info("bridge server started")

	ln, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		bs.Close()
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.ListenAddr, err)
	}
	pageURL := "http://" + ln.Addr().String() + "/"
	srv := &http.Server{
		Handler:           a.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := bs.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("bridge server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("page server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		bs.Close()
		a.log.Info("host stopped")
		return nil
	})

	a.log.WithField("url", pageURL).Info("page server started")
	if a.cfg.OpenBrowser {
		if err := a.platform.OpenURL(pageURL); err != nil {
			a.log.WithError(err).Warn("failed to open page")
		}
	}
	select {
	case a.ready <- pageURL:
	default:
	}

	return g.Wait()
}

func (a *App) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/bridge", bridge.NewWebSocketHandler(a.router, a.log))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(renderIndexHTML(a.router.Versions())))
	})
	return mux
}

// ---------------------------------------------------------------------------
// HostRouter implementation
// ---------------------------------------------------------------------------

type hostRouter struct {
	versions hostbridge.VersionInfo
}

func (r *hostRouter) Versions() hostbridge.VersionInfo {
	return r.versions
}

func (r *hostRouter) Ping() string {
	return hostbridge.AckToken
}
