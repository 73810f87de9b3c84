package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/hcm-member-service/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hcm-member-service/internal/core/member"
	"github.com/ogurasousui/hcm-member-service/internal/core/shift"
	"github.com/ogurasousui/hcm-member-service/internal/platform/config"
	pg "github.com/ogurasousui/hcm-member-service/internal/platform/db/postgres"
	"github.com/ogurasousui/hcm-member-service/internal/platform/logger"
	"github.com/ogurasousui/hcm-member-service/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env が無い環境では何もしない
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	isoLevel, err := pg.ParseIsolation(cfg.Database.Isolation)
	if err != nil {
		return err
	}
	txManager := pg.NewTransactionManager(dbPool, pg.WithIsolation(isoLevel))

	memberRepo := postgres.NewMemberRepository(dbPool)
	shiftRepo := postgres.NewShiftRepository(dbPool)

	memberOpts := []member.Option{member.WithLogger(log.Named("member"))}
	if cfg.Attendance.VerifyGroups {
		memberOpts = append(memberOpts, member.WithGroupDirectory(postgres.NewAttendanceGroupRepository(dbPool)))
	}

	svcs := server.Services{
		Members:     member.NewService(memberRepo, nil, txManager, memberOpts...),
		Assignments: member.NewCoordinator(memberRepo, nil, txManager, memberOpts...),
		Shifts:      shift.NewService(shiftRepo, nil, txManager, log.Named("shift")),
	}
	grpcServer := server.New(cfg.Server.ListenAddr, log.Named("grpc"), svcs)

	log.Info("gRPC server listening",
		zap.String("addr", cfg.Server.ListenAddr),
		zap.String("isolation", string(isoLevel)),
		zap.Bool("verify_groups", cfg.Attendance.VerifyGroups),
	)

	if err := grpcServer.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	log.Info("gRPC server stopped")
	return nil
}
