package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hcm-member-service/internal/core/attendance"
	pgdb "github.com/ogurasousui/hcm-member-service/internal/platform/db/postgres"
)

// AttendanceGroupRepository は勤怠グループの参照専用リポジトリです。
type AttendanceGroupRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceGroupRepository は AttendanceGroupRepository を生成します。
func NewAttendanceGroupRepository(pool pgdb.Queryer) *AttendanceGroupRepository {
	return &AttendanceGroupRepository{pool: pool}
}

// FindByID は ID で勤怠グループを取得します。
func (r *AttendanceGroupRepository) FindByID(ctx context.Context, id int64) (*attendance.Group, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, tracking_mode, created_at, updated_at
          FROM attendance_groups
         WHERE id = $1
         LIMIT 1
    `, id)

	var (
		g    attendance.Group
		mode string
	)
	if err := row.Scan(&g.ID, &g.Name, &mode, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrGroupNotFound
		}
		return nil, err
	}
	g.TrackingMode = attendance.TrackingMode(mode)
	return &g, nil
}
