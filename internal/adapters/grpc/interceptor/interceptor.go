// Package interceptor は gRPC サーバー共通のインターセプタを提供します。
package interceptor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// メタデータキーです。
const (
	MetadataRequestID = "x-request-id"
	MetadataActorID   = "x-actor-id"
)

type requestIDKey struct{}

type actorKey struct{}

// WithRequestID はコンテキストにリクエスト ID を設定します。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext はリクエスト ID を返します。未設定の場合は空文字です。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithActor はコンテキストに操作者 ID を設定します。
func WithActor(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext は操作者 ID を返します。匿名呼び出しの場合は nil です。
func ActorFromContext(ctx context.Context) *int64 {
	id, ok := ctx.Value(actorKey{}).(int64)
	if !ok {
		return nil
	}
	return &id
}

// UnaryServer はリクエスト ID と操作者の付与、パニックの回復、アクセスログを行うインターセプタを返します。
func UnaryServer(logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		md, _ := metadata.FromIncomingContext(ctx)

		requestID := firstValue(md, MetadataRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = WithRequestID(ctx, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(MetadataRequestID, requestID))

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", requestID),
		}

		if raw := firstValue(md, MetadataActorID); raw != "" {
			actorID, parseErr := parseActor(raw)
			if parseErr != nil {
				err = status.Error(codes.InvalidArgument, parseErr.Error())
				logger.Info("grpc request rejected", append(fields, zap.Error(parseErr))...)
				return nil, err
			}
			ctx = WithActor(ctx, actorID)
			fields = append(fields, zap.Int64("actor_id", actorID))
		}

		defer func() {
			if r := recover(); r != nil {
				logger.Error("grpc handler panic", append(fields, zap.Any("panic", r), zap.Stack("stack"))...)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			fields = append(fields, zap.String("code", code.String()), zap.Duration("duration", time.Since(start)))
			switch code {
			case codes.OK:
				logger.Info("grpc request", fields...)
			case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
				logger.Error("grpc request", append(fields, zap.Error(err))...)
			default:
				logger.Warn("grpc request", append(fields, zap.Error(err))...)
			}
		}()

		return handler(ctx, req)
	}
}

func firstValue(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func parseActor(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", MetadataActorID)
	}
	return id, nil
}
