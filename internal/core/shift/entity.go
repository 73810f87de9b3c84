package shift

import (
	"fmt"
	"time"
)

// Status はシフト定義の状態を表します。
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	// StatusDeleted は論理削除済みを表します。終端状態です。
	StatusDeleted Status = "DELETED"
)

// IsValid は定義済みの状態かを返します。
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	default:
		return false
	}
}

// Shift は勤務時間帯の定義です。EndTime が StartTime 以前の場合は日跨ぎとして扱います。
type Shift struct {
	ID           int64
	Name         string
	Description  string
	StartTime    ClockTime
	EndTime      ClockTime
	BreakMinutes int
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedByRef *int64
	UpdatedByRef *int64
}

// CrossesMidnight は日跨ぎのシフトかを返します。
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime <= s.StartTime
}

// SpanMinutes は休憩を含む拘束時間（分）を返します。
func (s *Shift) SpanMinutes() int {
	span := int(s.EndTime) - int(s.StartTime)
	if span <= 0 {
		span += minutesPerDay
	}
	return span
}

// WorkingMinutes は休憩を除いた実働時間（分）を返します。
func (s *Shift) WorkingMinutes() int {
	return s.SpanMinutes() - s.BreakMinutes
}

const minutesPerDay = 24 * 60

// ClockTime は 0 時からの経過分で表す時刻です。
type ClockTime int

// ParseClockTime は "HH:MM" 形式の文字列を解析します。
func ParseClockTime(raw string) (ClockTime, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String は "HH:MM" 形式で返します。
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
