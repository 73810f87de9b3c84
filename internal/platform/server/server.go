package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/hcm-member-service/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hcm-member-service/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/hcm-member-service/internal/core/member"
	"github.com/ogurasousui/hcm-member-service/internal/core/shift"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services はサーバーへ公開するユースケースの集合です。
type Services struct {
	Members     member.UseCase
	Assignments member.AssignmentUseCase
	Shifts      shift.UseCase
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, logger *zap.Logger, svcs Services, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptor.UnaryServer(logger))}, opts...)
	srv := grpc.NewServer(opts...)

	handler.RegisterMemberServiceServer(srv, handler.NewMemberGrpcHandler(svcs.Members, svcs.Assignments))
	handler.RegisterShiftServiceServer(srv, handler.NewShiftGrpcHandler(svcs.Shifts))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	for _, name := range []string{"", handler.MemberServiceName, handler.ShiftServiceName} {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.Serve(lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
