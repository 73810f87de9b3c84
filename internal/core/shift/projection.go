package shift

import "time"

// Response は外部へ公開するシフトの読み取りモデルです。
type Response struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	BreakMinutes    int       `json:"break_minutes"`
	WorkingMinutes  int       `json:"working_minutes"`
	CrossesMidnight bool      `json:"crosses_midnight"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedByRef    *int64    `json:"created_by,omitempty"`
	UpdatedByRef    *int64    `json:"updated_by,omitempty"`
}

// ToResponse はエンティティを読み取りモデルへ変換します。
func ToResponse(s *Shift) *Response {
	if s == nil {
		return nil
	}

	return &Response{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		BreakMinutes:    s.BreakMinutes,
		WorkingMinutes:  s.WorkingMinutes(),
		CrossesMidnight: s.CrossesMidnight(),
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		CreatedByRef:    cloneInt64(s.CreatedByRef),
		UpdatedByRef:    cloneInt64(s.UpdatedByRef),
	}
}
