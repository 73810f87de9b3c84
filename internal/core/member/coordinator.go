package member

import (
	"context"
	"fmt"

	"github.com/ogurasousui/hcm-member-service/internal/core/attendance"
	"go.uber.org/zap"
)

// Coordinator はメンバーと勤怠グループの割り当てを調整します。
type Coordinator struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	groups attendance.Repository
	logger *zap.Logger
}

// AssignmentUseCase は勤怠グループ割り当てユースケースの公開インターフェースです。
type AssignmentUseCase interface {
	AssignToGroup(ctx context.Context, in AssignToGroupInput) (*Member, error)
	RemoveFromGroup(ctx context.Context, in RemoveFromGroupInput) (*Member, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*Member, error)
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
}

// NewCoordinator は Coordinator を生成します。
func NewCoordinator(repo Repository, clock Clock, tx TransactionManager, opts ...Option) *Coordinator {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	o := buildOptions(opts)
	return &Coordinator{repo: repo, clock: clock, tx: tx, groups: o.groups, logger: o.logger}
}

// AssignToGroupInput は割り当て時の入力です。
type AssignToGroupInput struct {
	MemberID int64
	GroupID  int64
	ActorRef *int64
}

// RemoveFromGroupInput は割り当て解除時の入力です。
type RemoveFromGroupInput struct {
	MemberID int64
	ActorRef *int64
}

// AssignToGroup はメンバーを勤怠グループへ割り当てます。同じグループへの再割り当ても updated_at を更新します。
func (c *Coordinator) AssignToGroup(ctx context.Context, in AssignToGroupInput) (*Member, error) {
	if in.MemberID <= 0 {
		return nil, fmt.Errorf("member_id: %w", ErrInvalidID)
	}
	if in.GroupID <= 0 {
		return nil, fmt.Errorf("group_id: %w", ErrInvalidGroupRef)
	}

	var updated *Member
	if err := c.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := c.repo.FindByID(txCtx, in.MemberID)
		if err != nil {
			return err
		}

		if c.groups != nil {
			if _, err := attendance.EnsureAssignable(txCtx, c.groups, in.GroupID); err != nil {
				return err
			}
		}

		groupID := in.GroupID
		existing.AttendanceGroupRef = &groupID
		touch(existing, c.clock.Now())

		result, err := c.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	c.logger.Info("member assigned to attendance group",
		zap.Int64("member_id", in.MemberID),
		zap.Int64("group_id", in.GroupID),
		actorField(in.ActorRef),
	)
	return updated, nil
}

// RemoveFromGroup はメンバーの勤怠グループ割り当てを解除します。未割り当てでもエラーにはなりません。
func (c *Coordinator) RemoveFromGroup(ctx context.Context, in RemoveFromGroupInput) (*Member, error) {
	if in.MemberID <= 0 {
		return nil, fmt.Errorf("member_id: %w", ErrInvalidID)
	}

	var updated *Member
	if err := c.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := c.repo.FindByID(txCtx, in.MemberID)
		if err != nil {
			return err
		}

		existing.AttendanceGroupRef = nil
		touch(existing, c.clock.Now())

		result, err := c.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	c.logger.Info("member removed from attendance group", zap.Int64("member_id", in.MemberID), actorField(in.ActorRef))
	return updated, nil
}

// ListByGroup はグループに所属する全メンバーを返します。
func (c *Coordinator) ListByGroup(ctx context.Context, groupID int64) ([]*Member, error) {
	if groupID <= 0 {
		return nil, fmt.Errorf("group_id: %w", ErrInvalidGroupRef)
	}

	var members []*Member
	if err := c.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := c.repo.ListByAttendanceGroup(txCtx, groupID)
		if err != nil {
			return err
		}
		members = found
		return nil
	}); err != nil {
		return nil, err
	}

	return members, nil
}

// CountByGroup はグループに所属するメンバー数を返します。
func (c *Coordinator) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	if groupID <= 0 {
		return 0, fmt.Errorf("group_id: %w", ErrInvalidGroupRef)
	}

	var count int64
	if err := c.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		n, err := c.repo.CountByAttendanceGroup(txCtx, groupID)
		if err != nil {
			return err
		}
		count = n
		return nil
	}); err != nil {
		return 0, err
	}

	return count, nil
}
