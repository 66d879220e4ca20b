package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/ocean-hazard-api/internal/config"
	"github.com/yukikurage/ocean-hazard-api/internal/database"
	"github.com/yukikurage/ocean-hazard-api/internal/notify"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
	"github.com/yukikurage/ocean-hazard-api/internal/server"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

const shutdownTimeout = 15 * time.Second

var (
	configPath string
	portFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "ocean-hazard-api",
	Short: "Ocean hazard reporting and triage API",
	Long: `Serves the citizen hazard submission endpoints and the authority
triage dashboard API.

Configuration is read from an optional YAML file and then overridden by
environment variables such as PORT, DB_DRIVER and WEBHOOK_URL.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "listen port (overrides config and PORT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}

	setupLogger(cfg.Log.Level, cfg.Server.GinMode)
	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg.Database, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(db, time.Now().UTC()); err != nil {
			return err
		}
	}

	hub := services.NewFeedHub()
	defer hub.Close()

	var notifier services.ReportNotifier
	var webhook *notify.WebhookNotifier
	if cfg.Webhook.URL != "" {
		webhook = notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)
		notifier = webhook
		log.Info().Str("url", cfg.Webhook.URL).Msg("Report webhook enabled")
	}

	media, err := services.NewMediaService(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	if !media.Enabled() {
		log.Warn().Msg("S3 bucket not configured, media uploads disabled")
	}

	store, err := server.NewSessionStore(cfg.Session, cfg.Server.GinMode == gin.ReleaseMode)
	if err != nil {
		return err
	}

	reportRepo := repository.NewHazardReportRepository(db)
	teamRepo := repository.NewTeamMemberRepository(db)

	router := server.NewRouter(server.Services{
		Auth:    services.NewAuthService(repository.NewUserRepository(db)),
		Reports: services.NewReportService(reportRepo, hub, notifier),
		Triage:  services.NewTriageService(reportRepo, repository.NewAdminReportRepository(db), teamRepo, hub),
		Team:    services.NewTeamService(teamRepo, hub),
		Media:   media,
		Feed:    hub,
	}, store)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if webhook != nil {
		if err := webhook.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Pending webhook deliveries aborted")
		}
	}

	log.Info().Msg("Server exited")
	return nil
}

// setupLogger configures the global zerolog logger
func setupLogger(level, ginMode string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if ginMode != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
