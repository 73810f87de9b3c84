package handler

import (
	"context"
	"strings"

	"github.com/ogurasousui/hcm-member-service/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/hcm-member-service/internal/core/shift"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ShiftGrpcHandler は ShiftService の gRPC 実装です。
type ShiftGrpcHandler struct {
	svc shift.UseCase
}

var _ ShiftServiceServer = (*ShiftGrpcHandler)(nil)

// NewShiftGrpcHandler は ShiftGrpcHandler を生成します。
func NewShiftGrpcHandler(svc shift.UseCase) *ShiftGrpcHandler {
	return &ShiftGrpcHandler{svc: svc}
}

// CreateShift はシフトを作成します。
func (h *ShiftGrpcHandler) CreateShift(ctx context.Context, req *CreateShiftRequest) (*ShiftResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := h.svc.CreateShift(ctx, shift.CreateShiftInput{
		Name:         req.Name,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		ActorRef:     interceptor.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ShiftResponse{Shift: shift.ToResponse(created)}, nil
}

// GetShift はシフトを取得します。
func (h *ShiftGrpcHandler) GetShift(ctx context.Context, req *GetShiftRequest) (*ShiftResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetShift(ctx, shift.GetShiftInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ShiftResponse{Shift: shift.ToResponse(found)}, nil
}

// ListShifts はシフト一覧を返します。
func (h *ShiftGrpcHandler) ListShifts(ctx context.Context, req *ListShiftsRequest) (*ListShiftsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.ListShifts(ctx, shift.ListShiftsInput{
		Search: req.Search,
		Status: toShiftStatus(req.Status),
		Page:   req.Page,
		Size:   req.Size,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	shifts := make([]*shift.Response, 0, len(result.Shifts))
	for _, s := range result.Shifts {
		shifts = append(shifts, shift.ToResponse(s))
	}

	return &ListShiftsResponse{
		Shifts: shifts,
		Page:   result.Page,
		Size:   result.Size,
		Total:  result.Total,
	}, nil
}

// UpdateShift はシフトを部分更新します。
func (h *ShiftGrpcHandler) UpdateShift(ctx context.Context, req *UpdateShiftRequest) (*ShiftResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	updated, err := h.svc.UpdateShift(ctx, shift.UpdateShiftInput{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Status:       toShiftStatus(req.Status),
		ActorRef:     interceptor.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ShiftResponse{Shift: shift.ToResponse(updated)}, nil
}

// DeleteShift はシフトを論理削除します。
func (h *ShiftGrpcHandler) DeleteShift(ctx context.Context, req *DeleteShiftRequest) (*Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteShift(ctx, shift.DeleteShiftInput{
		ID:       req.ID,
		ActorRef: interceptor.ActorFromContext(ctx),
	}); err != nil {
		return nil, toStatusError(err)
	}

	return &Empty{}, nil
}

func toShiftStatus(raw *string) *shift.Status {
	if raw == nil {
		return nil
	}
	s := shift.Status(strings.ToUpper(strings.TrimSpace(*raw)))
	return &s
}
