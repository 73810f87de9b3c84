package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/hcm-member-service/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/hcm-member-service/internal/core/member"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MemberGrpcHandler は MemberService の gRPC 実装です。
type MemberGrpcHandler struct {
	svc         member.UseCase
	coordinator member.AssignmentUseCase
}

var _ MemberServiceServer = (*MemberGrpcHandler)(nil)

// NewMemberGrpcHandler は MemberGrpcHandler を生成します。
func NewMemberGrpcHandler(svc member.UseCase, coordinator member.AssignmentUseCase) *MemberGrpcHandler {
	return &MemberGrpcHandler{svc: svc, coordinator: coordinator}
}

// CreateMember はメンバーを作成します。
func (h *MemberGrpcHandler) CreateMember(ctx context.Context, req *CreateMemberRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.UserID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}

	profile, err := toProfileFields(req.MemberProfile)
	if err != nil {
		return nil, err
	}

	created, err := h.svc.CreateMember(ctx, member.CreateMemberInput{
		UserRef:       req.UserID,
		ActorRef:      interceptor.ActorFromContext(ctx),
		ProfileFields: profile,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(created)}, nil
}

// GetMember は ID でメンバーを取得します。
func (h *MemberGrpcHandler) GetMember(ctx context.Context, req *GetMemberRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetMember(ctx, member.GetMemberInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(found)}, nil
}

// GetMemberByUser はユーザー ID でメンバーを取得します。
func (h *MemberGrpcHandler) GetMemberByUser(ctx context.Context, req *GetMemberByUserRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetMemberByUser(ctx, member.GetMemberByUserInput{UserRef: req.UserID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(found)}, nil
}

// ListActiveMembers は在籍中のメンバー一覧を返します。
func (h *MemberGrpcHandler) ListActiveMembers(ctx context.Context, req *ListActiveMembersRequest) (*ListMembersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.ListActiveMembers(ctx, member.ListMembersInput{PageRequest: toPageRequest(req.PageRequest)})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toListMembersResponse(result), nil
}

// SearchMembers は名・姓の部分一致でメンバーを検索します。
func (h *MemberGrpcHandler) SearchMembers(ctx context.Context, req *SearchMembersRequest) (*ListMembersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.SearchMembers(ctx, member.SearchMembersInput{
		Term:        req.Term,
		PageRequest: toPageRequest(req.PageRequest),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toListMembersResponse(result), nil
}

// UpdateMember はメンバーを部分更新します。
func (h *MemberGrpcHandler) UpdateMember(ctx context.Context, req *UpdateMemberRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	profile, err := toProfileFields(req.MemberProfile)
	if err != nil {
		return nil, err
	}

	var statusPtr *member.Status
	if req.Status != nil {
		s := member.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		statusPtr = &s
	}

	updated, err := h.svc.UpdateMember(ctx, member.UpdateMemberInput{
		ID:            req.ID,
		ActorRef:      interceptor.ActorFromContext(ctx),
		Status:        statusPtr,
		ProfileFields: profile,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(updated)}, nil
}

// DeleteMember はメンバーを削除します。
func (h *MemberGrpcHandler) DeleteMember(ctx context.Context, req *DeleteMemberRequest) (*Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteMember(ctx, member.DeleteMemberInput{
		ID:       req.ID,
		ActorRef: interceptor.ActorFromContext(ctx),
	}); err != nil {
		return nil, toStatusError(err)
	}

	return &Empty{}, nil
}

// AssignAttendanceGroup はメンバーを勤怠グループへ割り当てます。
func (h *MemberGrpcHandler) AssignAttendanceGroup(ctx context.Context, req *AssignAttendanceGroupRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assigned, err := h.coordinator.AssignToGroup(ctx, member.AssignToGroupInput{
		MemberID: req.MemberID,
		GroupID:  req.GroupID,
		ActorRef: interceptor.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(assigned)}, nil
}

// RemoveAttendanceGroup はメンバーの勤怠グループ割り当てを解除します。
func (h *MemberGrpcHandler) RemoveAttendanceGroup(ctx context.Context, req *RemoveAttendanceGroupRequest) (*MemberResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	removed, err := h.coordinator.RemoveFromGroup(ctx, member.RemoveFromGroupInput{
		MemberID: req.MemberID,
		ActorRef: interceptor.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &MemberResponse{Member: member.ToResponse(removed)}, nil
}

// ListMembersByGroup は勤怠グループの所属メンバーを返します。
func (h *MemberGrpcHandler) ListMembersByGroup(ctx context.Context, req *AttendanceGroupRequest) (*GroupMembersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	members, err := h.coordinator.ListByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GroupMembersResponse{GroupID: req.GroupID, Members: member.ToResponses(members)}, nil
}

// CountMembersByGroup は勤怠グループの所属人数を返します。
func (h *MemberGrpcHandler) CountMembersByGroup(ctx context.Context, req *AttendanceGroupRequest) (*CountMembersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	count, err := h.coordinator.CountByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &CountMembersResponse{GroupID: req.GroupID, Count: count}, nil
}

func toProfileFields(p MemberProfile) (member.ProfileFields, error) {
	employedOn, err := parseDate(p.DateOfEmployment)
	if err != nil {
		return member.ProfileFields{}, status.Error(codes.InvalidArgument, fmt.Sprintf("date_of_employment: %v", err))
	}

	return member.ProfileFields{
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		PhoneNumber:        p.PhoneNumber,
		DepartmentRef:      p.DepartmentID,
		JobTitle:           p.JobTitle,
		Alias:              p.Alias,
		DeskID:             p.DeskID,
		PhoneExtension:     p.PhoneExtension,
		EmployeeNumber:     p.EmployeeNumber,
		Gender:             p.Gender,
		WorkforceType:      p.WorkforceType,
		DateOfEmployment:   employedOn,
		Country:            p.Country,
		City:               p.City,
		DirectManager:      p.DirectManager,
		DottedLineManager:  p.DottedLineManager,
		AttendanceGroupRef: p.AttendanceGroupID,
	}, nil
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(member.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return &t, nil
}

// toPageRequest は並び順の指定が無い場合、名の昇順を既定とします。
func toPageRequest(p PageRequest) member.PageRequest {
	field := member.SortField(strings.ToLower(strings.TrimSpace(p.Sort)))
	if field == "" {
		field = member.SortByFirstName
	}
	return member.PageRequest{
		Page: p.Page,
		Size: p.Size,
		Sort: member.Sort{
			Field:      field,
			Descending: p.Descending,
		},
	}
}

func toListMembersResponse(result *member.ListMembersResult) *ListMembersResponse {
	return &ListMembersResponse{
		Members:    member.ToResponses(result.Members),
		Page:       result.Page,
		Size:       result.Size,
		Total:      result.Total,
		TotalPages: result.TotalPages(),
	}
}
