package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LaKensak/fronten/internal/clients"
	"github.com/LaKensak/fronten/internal/config"
	webhttp "github.com/LaKensak/fronten/internal/http"
	"github.com/LaKensak/fronten/internal/http/handlers"
	"github.com/LaKensak/fronten/internal/http/middleware"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/metrics"
	"github.com/LaKensak/fronten/internal/service"
	"github.com/LaKensak/fronten/internal/session"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting web", "env", cfg.Env, "api", cfg.API.BaseURL)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	cl, err := clients.New(rootCtx, *cfg, log, m)
	if err != nil {
		log.Error("clients_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if cerr := cl.Close(); cerr != nil {
			log.Warn("clients_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	log.Info("clients_initialized")

	svc := service.New(cl.API, cl.Processor, cl.Drafts, log, service.Options{
		Location:  cfg.Booking.Location(),
		OpenHour:  cfg.Booking.OpenHour,
		CloseHour: cfg.Booking.CloseHour,
		Currency:  cfg.Stripe.Currency,
		DraftTTL:  cfg.Drafts.TTL,
	})
	svc.SetPaymentRecorder(m)

	v, err := views.New()
	if err != nil {
		log.Error("views_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	sessions := session.NewStore(session.Options{
		Secure:     !cfg.Cookies.Insecure,
		AccessTTL:  cfg.Cookies.AccessTTL,
		RefreshTTL: cfg.Cookies.RefreshTTL,
	})

	opts := webhttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		Metrics:        m,
		Sessions:       sessions,
		RateLimitRPS:   cfg.Security.RateLimitRPS,
		RateLimitBurst: cfg.Security.RateLimitBurst,
	}

	if cfg.Security.CSRFKey != "" {
		mw, err := middleware.CSRF([]byte(cfg.Security.CSRFKey), cfg.Cookies.Insecure)
		if err != nil {
			log.Error("csrf_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		opts.CSRF = mw
	} else {
		log.Warn("csrf key is not set: form protection is disabled")
	}

	webHandler := webhttp.NewRouter(handlers.New(svc, sessions, v, cl.Processor.PublishableKey()), opts)

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", webHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("web_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
