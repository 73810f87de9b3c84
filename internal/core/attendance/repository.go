package attendance

import (
	"context"
	"fmt"
)

// Repository は勤怠グループの参照を行うインターフェースです。書き込みはこのサービスの責務外です。
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Group, error)
}

// EnsureAssignable はグループが存在し、メンバーを受け入れるモードであることを確認します。
func EnsureAssignable(ctx context.Context, repo Repository, groupID int64) (*Group, error) {
	if groupID <= 0 {
		return nil, fmt.Errorf("group_id: %w", ErrInvalidGroupID)
	}

	group, err := repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.TrackingMode.IsValid() {
		return nil, fmt.Errorf("group %d: %w", groupID, ErrInvalidTrackingMode)
	}
	if !group.TrackingMode.AcceptsMembers() {
		return nil, fmt.Errorf("group %d: %w", groupID, ErrGroupNotTracking)
	}

	return group, nil
}
