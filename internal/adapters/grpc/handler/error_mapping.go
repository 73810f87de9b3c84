package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/hcm-member-service/internal/core/apperr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case apperr.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case apperr.IsConflict(err):
		return status.Error(codes.AlreadyExists, err.Error())
	case apperr.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
