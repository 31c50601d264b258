package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "github.com/cmlabs-hris/leave-tracker/internal/handler/http"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/leave-tracker/internal/service/employee"
	leaveService "github.com/cmlabs-hris/leave-tracker/internal/service/leave"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	counterRepo := postgresql.NewDepartmentCounterRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	serializer := database.NewSerializer(postgresql.NewTxManager(db))

	employeeSvc := employeeService.NewEmployeeService(serializer, employeeRepo, counterRepo, leaveRequestRepo, cfg.Leave.DefaultBalance)
	leaveSvc := leaveService.NewLeaveService(serializer, employeeRepo, leaveRequestRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	requestLogLevel := slog.LevelDebug
	if cfg.IsProduction() {
		requestLogLevel = slog.LevelInfo
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:          logger,
		AllowedOrigins:  cfg.App.CORSAllowedOrigins,
		RequestTimeout:  cfg.App.RequestTimeout,
		RequestLogLevel: requestLogLevel,
	}, employeeHandler, leaveHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.App.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", server.Addr, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}
