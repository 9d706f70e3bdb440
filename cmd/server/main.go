package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schooltab/timetable/internal/app"
	"github.com/schooltab/timetable/internal/config"
	httpctrl "github.com/schooltab/timetable/internal/controller/http"
	"github.com/schooltab/timetable/internal/repository"
	"github.com/schooltab/timetable/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	slotRepo := repository.NewSlotRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	classRepo := repository.NewClassRepository(pool)

	bookings := service.NewBookingService(slotRepo, assignmentRepo, classRepo, logger)
	schedule := service.NewScheduleService(slotRepo)
	checker := service.NewConflictChecker(slotRepo, classRepo)

	handler := httpctrl.NewHandler(bookings, schedule, checker, logger)
	router := httpctrl.NewRouter(handler, []byte(cfg.JWTSecret), logger)

	server := app.NewServer(cfg.HTTPAddr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}
