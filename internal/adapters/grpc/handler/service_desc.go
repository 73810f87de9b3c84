package handler

import (
	"context"

	"github.com/ogurasousui/hcm-member-service/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
)

const (
	MemberServiceName = "hcm.v1.MemberService"
	ShiftServiceName  = "hcm.v1.ShiftService"
)

// MemberServiceServer は MemberService のサーバー側インターフェースです。
type MemberServiceServer interface {
	CreateMember(context.Context, *CreateMemberRequest) (*MemberResponse, error)
	GetMember(context.Context, *GetMemberRequest) (*MemberResponse, error)
	GetMemberByUser(context.Context, *GetMemberByUserRequest) (*MemberResponse, error)
	ListActiveMembers(context.Context, *ListActiveMembersRequest) (*ListMembersResponse, error)
	SearchMembers(context.Context, *SearchMembersRequest) (*ListMembersResponse, error)
	UpdateMember(context.Context, *UpdateMemberRequest) (*MemberResponse, error)
	DeleteMember(context.Context, *DeleteMemberRequest) (*Empty, error)
	AssignAttendanceGroup(context.Context, *AssignAttendanceGroupRequest) (*MemberResponse, error)
	RemoveAttendanceGroup(context.Context, *RemoveAttendanceGroupRequest) (*MemberResponse, error)
	ListMembersByGroup(context.Context, *AttendanceGroupRequest) (*GroupMembersResponse, error)
	CountMembersByGroup(context.Context, *AttendanceGroupRequest) (*CountMembersResponse, error)
}

// ShiftServiceServer は ShiftService のサーバー側インターフェースです。
type ShiftServiceServer interface {
	CreateShift(context.Context, *CreateShiftRequest) (*ShiftResponse, error)
	GetShift(context.Context, *GetShiftRequest) (*ShiftResponse, error)
	ListShifts(context.Context, *ListShiftsRequest) (*ListShiftsResponse, error)
	UpdateShift(context.Context, *UpdateShiftRequest) (*ShiftResponse, error)
	DeleteShift(context.Context, *DeleteShiftRequest) (*Empty, error)
}

// unaryMethod は型付きハンドラから grpc.MethodDesc を組み立てます。
func unaryMethod[S any, Req any, Resp any](service, name string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// MemberServiceDesc は MemberService のサービス定義です。
var MemberServiceDesc = grpc.ServiceDesc{
	ServiceName: MemberServiceName,
	HandlerType: (*MemberServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MemberServiceName, "CreateMember", MemberServiceServer.CreateMember),
		unaryMethod(MemberServiceName, "GetMember", MemberServiceServer.GetMember),
		unaryMethod(MemberServiceName, "GetMemberByUser", MemberServiceServer.GetMemberByUser),
		unaryMethod(MemberServiceName, "ListActiveMembers", MemberServiceServer.ListActiveMembers),
		unaryMethod(MemberServiceName, "SearchMembers", MemberServiceServer.SearchMembers),
		unaryMethod(MemberServiceName, "UpdateMember", MemberServiceServer.UpdateMember),
		unaryMethod(MemberServiceName, "DeleteMember", MemberServiceServer.DeleteMember),
		unaryMethod(MemberServiceName, "AssignAttendanceGroup", MemberServiceServer.AssignAttendanceGroup),
		unaryMethod(MemberServiceName, "RemoveAttendanceGroup", MemberServiceServer.RemoveAttendanceGroup),
		unaryMethod(MemberServiceName, "ListMembersByGroup", MemberServiceServer.ListMembersByGroup),
		unaryMethod(MemberServiceName, "CountMembersByGroup", MemberServiceServer.CountMembersByGroup),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hcm/v1/member.proto",
}

// ShiftServiceDesc は ShiftService のサービス定義です。
var ShiftServiceDesc = grpc.ServiceDesc{
	ServiceName: ShiftServiceName,
	HandlerType: (*ShiftServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(ShiftServiceName, "CreateShift", ShiftServiceServer.CreateShift),
		unaryMethod(ShiftServiceName, "GetShift", ShiftServiceServer.GetShift),
		unaryMethod(ShiftServiceName, "ListShifts", ShiftServiceServer.ListShifts),
		unaryMethod(ShiftServiceName, "UpdateShift", ShiftServiceServer.UpdateShift),
		unaryMethod(ShiftServiceName, "DeleteShift", ShiftServiceServer.DeleteShift),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hcm/v1/shift.proto",
}

// RegisterMemberServiceServer は MemberService をサーバーへ登録します。
func RegisterMemberServiceServer(s grpc.ServiceRegistrar, srv MemberServiceServer) {
	s.RegisterService(&MemberServiceDesc, srv)
}

// RegisterShiftServiceServer は ShiftService をサーバーへ登録します。
func RegisterShiftServiceServer(s grpc.ServiceRegistrar, srv ShiftServiceServer) {
	s.RegisterService(&ShiftServiceDesc, srv)
}

// Invoke は JSON コーデックで単項 RPC を呼び出します。
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, service, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
