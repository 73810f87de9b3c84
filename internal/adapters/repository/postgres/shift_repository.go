package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hcm-member-service/internal/core/shift"
	pgdb "github.com/ogurasousui/hcm-member-service/internal/platform/db/postgres"
)

const shiftColumns = `id, name, description, start_minute, end_minute, break_minutes, status,
               created_at, updated_at, created_by, updated_by`

// ShiftRepository は PostgreSQL を利用したシフト永続化の実装です。
type ShiftRepository struct {
	pool pgdb.Queryer
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(pool pgdb.Queryer) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// Create はシフトを新規作成します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO shifts (name, description, start_minute, end_minute, break_minutes, status,
                            created_at, updated_at, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING `+shiftColumns,
		s.Name,
		s.Description,
		int(s.StartTime),
		int(s.EndTime),
		s.BreakMinutes,
		string(s.Status),
		s.CreatedAt,
		s.UpdatedAt,
		nullableInt64(s.CreatedByRef),
		nullableInt64(s.UpdatedByRef),
	)

	created, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return created, nil
}

// Update はシフトを更新します。論理削除も状態の更新として扱います。
func (r *ShiftRepository) Update(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE shifts
           SET name = $1,
               description = $2,
               start_minute = $3,
               end_minute = $4,
               break_minutes = $5,
               status = $6,
               updated_at = $7,
               updated_by = $8
         WHERE id = $9
        RETURNING `+shiftColumns,
		s.Name,
		s.Description,
		int(s.StartTime),
		int(s.EndTime),
		s.BreakMinutes,
		string(s.Status),
		s.UpdatedAt,
		nullableInt64(s.UpdatedByRef),
		s.ID,
	)

	updated, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return updated, nil
}

// FindByID は ID でシフトを取得します。論理削除済みの行も返します。
func (r *ShiftRepository) FindByID(ctx context.Context, id int64) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+shiftColumns+`
          FROM shifts
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return found, nil
}

// List は条件に一致するシフトと総件数を返します。
func (r *ShiftRepository) List(ctx context.Context, filter shift.ListFilter) ([]*shift.Shift, int64, error) {
	if filter.Limit <= 0 {
		return nil, 0, shift.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, 0, shift.ErrInvalidPage
	}

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	placeholder := "$" + strconv.Itoa(len(args)+1)
	if filter.Status != nil {
		conditions = append(conditions, "status = "+placeholder)
		args = append(args, string(*filter.Status))
	} else {
		conditions = append(conditions, "status <> "+placeholder)
		args = append(args, string(shift.StatusDeleted))
	}

	if term := strings.TrimSpace(filter.Term); term != "" {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "name ILIKE "+placeholder+` ESCAPE '\'`)
		args = append(args, containsPattern(term))
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var total int64
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM shifts`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, translateShiftPgError(err)
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT ` + shiftColumns + `
          FROM shifts` + whereClause + `
         ORDER BY id ASC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateShiftPgError(err)
	}
	defer rows.Close()

	shifts := make([]*shift.Shift, 0, filter.Limit)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, translateShiftPgError(err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, translateShiftPgError(err)
	}

	return shifts, total, nil
}

func scanShift(row pgx.Row) (*shift.Shift, error) {
	var (
		s           shift.Shift
		startMinute int
		endMinute   int
		status      string
		createdBy   sql.NullInt64
		updatedBy   sql.NullInt64
	)

	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&startMinute,
		&endMinute,
		&s.BreakMinutes,
		&status,
		&s.CreatedAt,
		&s.UpdatedAt,
		&createdBy,
		&updatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}

	s.StartTime = shift.ClockTime(startMinute)
	s.EndTime = shift.ClockTime(endMinute)
	s.Status = shift.Status(status)
	s.CreatedByRef = int64FromNull(createdBy)
	s.UpdatedByRef = int64FromNull(updatedBy)
	return &s, nil
}

func translateShiftPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shift.ErrShiftNotFound
	}

	if pgErr, ok := asPgError(err); ok && pgErr.Code == checkViolationCode {
		switch pgErr.ConstraintName {
		case "shifts_status_check":
			return shift.ErrInvalidStatus
		case "shifts_break_minutes_check":
			return shift.ErrInvalidBreak
		default:
			return shift.ErrInvalidTime
		}
	}

	return err
}
