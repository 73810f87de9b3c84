package member

import "time"

// Status はメンバーの在籍状態を表します。
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusResigned   Status = "RESIGNED"
	StatusTerminated Status = "TERMINATED"
)

// IsValid は定義済みの状態かを返します。状態間の遷移には制約を設けていません。
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusResigned, StatusTerminated:
		return true
	default:
		return false
	}
}

// Member は社員プロフィールのエンティティです。ログイン資格情報は保持しません。
type Member struct {
	ID                 int64
	UserRef            int64
	FirstName          string
	LastName           string
	PhoneNumber        string
	DepartmentRef      *int64
	JobTitle           string
	Alias              string
	DeskID             string
	PhoneExtension     string
	EmployeeNumber     *string
	Gender             string
	WorkforceType      string
	DateOfEmployment   *time.Time
	Country            string
	City               string
	DirectManager      string
	DottedLineManager  string
	AttendanceGroupRef *int64
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CreatedByRef       *int64
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
