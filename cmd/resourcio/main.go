// Command resourcio runs the resource planning API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/resourcio/resourcio/internal/api"
	"github.com/resourcio/resourcio/internal/config"
	"github.com/resourcio/resourcio/internal/database"
	"github.com/resourcio/resourcio/internal/middleware"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/scheduler"
	"github.com/resourcio/resourcio/internal/service"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "resourcio",
		Short: "Resource planning and time tracking API",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to yaml config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the API server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate()
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	middleware.RegisterMetrics(reg)

	store, cleanup, err := buildStore(ctx, cfg, reg)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := planning.NewEngine(
		planning.WithNonProjectHours(cfg.Planning.NonProjectHours),
		planning.WithThresholds(planning.Thresholds{
			OptimalMin: cfg.Planning.Thresholds.OptimalMin,
			OptimalMax: cfg.Planning.Thresholds.OptimalMax,
			Warning:    cfg.Planning.Thresholds.Warning,
			Error:      cfg.Planning.Thresholds.Error,
			Critical:   cfg.Planning.Thresholds.Critical,
		}),
	)

	authSvc := service.NewAuthService(store.Users, cfg.Auth)
	planningSvc := service.NewPlanningService(store, engine)
	submissionSvc := service.NewSubmissionService(store, cfg.Submissions.UnsubmitGracePeriod)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	api.NewAPIRouter(store, authSvc, planningSvc, submissionSvc).RegisterRoutes(r)

	sched := scheduler.New(cfg.Scheduler, submissionSvc)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (driver %s)", cfg.Server.Addr(), cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore selects the storage backend from config. The memory driver
// serves demos and comes pre-seeded.
func buildStore(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*repository.Store, func(), error) {
	if cfg.Database.Driver == "memory" {
		store, _ := repository.NewMemoryStore()
		if err := seedDemo(ctx, store); err != nil {
			return nil, nil, fmt.Errorf("seed demo data: %w", err)
		}
		log.Printf("using in-memory store with demo data")
		return store, func() {}, nil
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	reg.MustRegister(database.NewStatsCollector(db))
	return repository.NewPostgresStore(db), func() { db.Close() }, nil
}

func migrate() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrate requires the postgres driver")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	log.Printf("schema applied")
	return nil
}
