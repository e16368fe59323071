package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/audit"
	"timesheet-web/internal/config"
	"timesheet-web/internal/httpapi"
	"timesheet-web/internal/migrations"
	"timesheet-web/internal/session"
	"timesheet-web/internal/timesheet"
	"timesheet-web/pkg/logger"
	"timesheet-web/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var auditRepo audit.Repository = audit.NewMemoryRepo()
	if cfg.PostgresEnabled() {
		db, err := utils.OpenPostgres(rootCtx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := migrations.Run(db); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		auditRepo = audit.NewPostgresRepo(db)
	} else {
		log.Warn("DB_HOST not set, session events are kept in memory")
	}

	var users session.UserCache = session.NewMemoryUserCache(cfg.Session.UserCacheSize, cfg.Session.UserCacheTTL)
	if cfg.RedisEnabled() {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		users = session.NewRedisUserCache(rdb, "", cfg.Session.UserCacheTTL)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sessions := session.NewManager(
		client,
		session.NewCookieStore(cfg.Session.CookieName, cfg.Session.CookieSecure),
		users,
		audit.NewService(auditRepo),
	)

	proxy, err := httpapi.NewProxy(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		log.Error("proxy init failed", "err", err)
		os.Exit(1)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.SetHTMLTemplate(httpapi.Templates())

	registerRoutes(r, routeDeps{
		handlers: httpapi.Handlers{
			Sessions:   sessions,
			Timesheets: timesheet.NewService(client),
			Backend:    client,
		},
		proxy: proxy,
		orgs:  client,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("web listening", "addr", srv.Addr, "api_base_url", client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
