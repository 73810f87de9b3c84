package member

import "time"

// Response は外部へ公開するメンバーの読み取りモデルです。
type Response struct {
	ID                 int64     `json:"id"`
	UserRef            int64     `json:"user_id"`
	FirstName          string    `json:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty"`
	PhoneNumber        string    `json:"phone_number,omitempty"`
	DepartmentRef      *int64    `json:"department_id,omitempty"`
	JobTitle           string    `json:"job_title,omitempty"`
	Alias              string    `json:"alias,omitempty"`
	DeskID             string    `json:"desk_id,omitempty"`
	PhoneExtension     string    `json:"phone_extension,omitempty"`
	EmployeeNumber     *string   `json:"employee_number,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	WorkforceType      string    `json:"workforce_type,omitempty"`
	DateOfEmployment   string    `json:"date_of_employment,omitempty"`
	Country            string    `json:"country,omitempty"`
	City               string    `json:"city,omitempty"`
	DirectManager      string    `json:"direct_manager,omitempty"`
	DottedLineManager  string    `json:"dotted_line_manager,omitempty"`
	AttendanceGroupRef *int64    `json:"attendance_group_id"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DateLayout は日付項目の表現形式です。
const DateLayout = "2006-01-02"

// ToResponse はエンティティを読み取りモデルへ変換します。nil を渡すと nil を返します。
func ToResponse(m *Member) *Response {
	if m == nil {
		return nil
	}

	resp := &Response{
		ID:                 m.ID,
		UserRef:            m.UserRef,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		PhoneNumber:        m.PhoneNumber,
		DepartmentRef:      cloneInt64(m.DepartmentRef),
		JobTitle:           m.JobTitle,
		Alias:              m.Alias,
		DeskID:             m.DeskID,
		PhoneExtension:     m.PhoneExtension,
		EmployeeNumber:     cloneString(m.EmployeeNumber),
		Gender:             m.Gender,
		WorkforceType:      m.WorkforceType,
		Country:            m.Country,
		City:               m.City,
		DirectManager:      m.DirectManager,
		DottedLineManager:  m.DottedLineManager,
		AttendanceGroupRef: cloneInt64(m.AttendanceGroupRef),
		Status:             m.Status,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.DateOfEmployment != nil {
		resp.DateOfEmployment = m.DateOfEmployment.Format(DateLayout)
	}
	return resp
}

// ToResponses は複数のエンティティをまとめて変換します。
func ToResponses(members []*Member) []*Response {
	out := make([]*Response, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		out = append(out, ToResponse(m))
	}
	return out
}
