package attendance

import "time"

// TrackingMode は勤怠グループがメンバーをどのように追跡するかを表します。
type TrackingMode string

const (
	// TrackingModeAll はグループの全メンバーを追跡します。
	TrackingModeAll TrackingMode = "ALL"
	// TrackingModeCustom は条件に一致するメンバーのみ追跡します。条件の評価は別サブシステムが担います。
	TrackingModeCustom TrackingMode = "CUSTOM"
	// TrackingModeNone はメンバーを追跡しません。
	TrackingModeNone TrackingMode = "NONE"
)

// IsValid は定義済みのモードかを返します。
func (m TrackingMode) IsValid() bool {
	switch m {
	case TrackingModeAll, TrackingModeCustom, TrackingModeNone:
		return true
	default:
		return false
	}
}

// AcceptsMembers は明示的なメンバー割り当てが意味を持つモードかを返します。
func (m TrackingMode) AcceptsMembers() bool {
	return m == TrackingModeAll || m == TrackingModeCustom
}

// Group は勤怠グループの参照用スナップショットです。
type Group struct {
	ID           int64
	Name         string
	TrackingMode TrackingMode
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
