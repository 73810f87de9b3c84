package handler

import (
	"github.com/ogurasousui/hcm-member-service/internal/core/member"
	"github.com/ogurasousui/hcm-member-service/internal/core/shift"
)

// MemberProfile はメンバー作成・更新時のプロフィール項目です。省略した項目は変更されません。
type MemberProfile struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	DepartmentID      *int64  `json:"department_id,omitempty"`
	JobTitle          *string `json:"job_title,omitempty"`
	Alias             *string `json:"alias,omitempty"`
	DeskID            *string `json:"desk_id,omitempty"`
	PhoneExtension    *string `json:"phone_extension,omitempty"`
	EmployeeNumber    *string `json:"employee_number,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	WorkforceType     *string `json:"workforce_type,omitempty"`
	DateOfEmployment  *string `json:"date_of_employment,omitempty"`
	Country           *string `json:"country,omitempty"`
	City              *string `json:"city,omitempty"`
	DirectManager     *string `json:"direct_manager,omitempty"`
	DottedLineManager *string `json:"dotted_line_manager,omitempty"`
	AttendanceGroupID *int64  `json:"attendance_group_id,omitempty"`
}

// PageRequest は一覧系 RPC の共通ページング指定です。Page は 0 始まりです。
type PageRequest struct {
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	Sort       string `json:"sort,omitempty"`
	Descending bool   `json:"descending,omitempty"`
}

type CreateMemberRequest struct {
	UserID int64 `json:"user_id"`
	MemberProfile
}

type UpdateMemberRequest struct {
	ID     int64   `json:"id"`
	Status *string `json:"status,omitempty"`
	MemberProfile
}

type GetMemberRequest struct {
	ID int64 `json:"id"`
}

type GetMemberByUserRequest struct {
	UserID int64 `json:"user_id"`
}

type DeleteMemberRequest struct {
	ID int64 `json:"id"`
}

type ListActiveMembersRequest struct {
	PageRequest
}

type SearchMembersRequest struct {
	Term string `json:"term"`
	PageRequest
}

type AssignAttendanceGroupRequest struct {
	MemberID int64 `json:"member_id"`
	GroupID  int64 `json:"group_id"`
}

type RemoveAttendanceGroupRequest struct {
	MemberID int64 `json:"member_id"`
}

type AttendanceGroupRequest struct {
	GroupID int64 `json:"group_id"`
}

type MemberResponse struct {
	Member *member.Response `json:"member"`
}

type ListMembersResponse struct {
	Members    []*member.Response `json:"members"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

type GroupMembersResponse struct {
	GroupID int64              `json:"group_id"`
	Members []*member.Response `json:"members"`
}

type CountMembersResponse struct {
	GroupID int64 `json:"group_id"`
	Count   int64 `json:"count"`
}

// Empty は応答本文を持たない RPC の戻り値です。
type Empty struct{}

type CreateShiftRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
}

type UpdateShiftRequest struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type GetShiftRequest struct {
	ID int64 `json:"id"`
}

type DeleteShiftRequest struct {
	ID int64 `json:"id"`
}

type ListShiftsRequest struct {
	Search string  `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}

type ShiftResponse struct {
	Shift *shift.Response `json:"shift"`
}

type ListShiftsResponse struct {
	Shifts []*shift.Response `json:"shifts"`
	Page   int               `json:"page"`
	Size   int               `json:"size"`
	Total  int64             `json:"total"`
}
