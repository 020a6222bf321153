// Command server runs the event management HTTP API.
//
//	@title			Event Management API
//	@version		1.0
//	@description	Create events, list upcoming events, register attendees and list them page by page.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventmanagement/config"
	_ "eventmanagement/docs" // swagger spec
	"eventmanagement/internal/adapters/email"
	"eventmanagement/internal/database"
	httpdelivery "eventmanagement/internal/delivery/http"
	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/domain"
	"eventmanagement/internal/metrics"
	"eventmanagement/internal/repository/sqlstore"
	"eventmanagement/internal/services"
)

func main() {
	var port, bind string
	flag.StringVar(&port, "port", "", "port to listen on (overrides SERVICE_PORT)")
	flag.StringVar(&port, "p", "", "shorthand for --port")
	flag.StringVar(&bind, "bind", "", "address to bind to (overrides SERVICE_HOST)")
	flag.StringVar(&bind, "b", "", "shorthand for --bind")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if port != "" {
		cfg.Port = port
	}
	if bind != "" {
		cfg.Host = bind
	}

	logger, closer, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(ctx, cfg.DBUrl, database.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns(),
		MaxIdleConns:    cfg.PoolSize,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()
	logger.Info("database connected", "driver", db.Driver, "max_open_conns", cfg.MaxOpenConns())

	if err := db.Migrate(ctx, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	var m *metrics.Metrics
	var recorder domain.RegistrationMetrics
	if cfg.EnableMetrics {
		m = metrics.New()
		recorder = m
	}

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}

	eventService := services.NewEventService(sqlstore.NewEventRepository(db), recorder, logger, cfg.ContextTimeout)
	attendeeService := services.NewAttendeeService(
		sqlstore.NewRegistrationStore(db),
		sqlstore.NewAttendeeRepository(db),
		notifier,
		recorder,
		logger,
		cfg.ContextTimeout,
	)

	routerCfg := httpdelivery.RouterConfig{
		ModuleName:         cfg.ModuleName,
		EventController:    controllers.NewEventController(logger, eventService),
		AttendeeController: controllers.NewAttendeeController(logger, attendeeService),
	}
	handlerCfg := httpdelivery.HandlerConfig{
		Logger:      logger,
		EnableCORS:  cfg.EnableCORS,
		CORSOrigins: cfg.CORSURLs,
	}
	if m != nil {
		routerCfg.MetricsHandler = m.Handler()
		handlerCfg.MetricsWrapper = m.Middleware
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpdelivery.NewHandler(httpdelivery.NewRouter(routerCfg), handlerCfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("event management API listening", "addr", server.Addr, "module", cfg.ModuleName)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newNotifier(cfg *config.Config, logger *slog.Logger) (domain.RegistrationNotifier, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	return services.NewEmailService(mailer, renderer, logger), nil
}
