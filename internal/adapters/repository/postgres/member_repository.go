package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hcm-member-service/internal/core/attendance"
	"github.com/ogurasousui/hcm-member-service/internal/core/member"
	pgdb "github.com/ogurasousui/hcm-member-service/internal/platform/db/postgres"
)

const (
	membersUserIDKey         = "members_user_id_key"
	membersEmployeeNumberKey = "members_employee_number_key"
	membersGroupFkey         = "members_attendance_group_id_fkey"
)

const memberColumns = `m.id, m.user_id, m.first_name, m.last_name, m.phone_number, m.department_id, m.job_title,
               m.alias, m.desk_id, m.phone_extension, m.employee_number, m.gender, m.workforce_type,
               m.date_of_employment, m.country, m.city, m.direct_manager, m.dotted_line_manager,
               m.attendance_group_id, m.status, m.created_at, m.updated_at, m.created_by`

var memberSortColumns = map[member.SortField]string{
	member.SortByFirstName:      "m.first_name",
	member.SortByLastName:       "m.last_name",
	member.SortByEmployeeNumber: "m.employee_number",
	member.SortByCreatedAt:      "m.created_at",
}

// MemberRepository は PostgreSQL を利用したメンバー永続化の実装です。
type MemberRepository struct {
	pool pgdb.Queryer
}

// NewMemberRepository は MemberRepository を生成します。
func NewMemberRepository(pool pgdb.Queryer) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create はメンバーを新規作成します。
func (r *MemberRepository) Create(ctx context.Context, m *member.Member) (*member.Member, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO members AS m (user_id, first_name, last_name, phone_number, department_id, job_title,
                                  alias, desk_id, phone_extension, employee_number, gender, workforce_type,
                                  date_of_employment, country, city, direct_manager, dotted_line_manager,
                                  attendance_group_id, status, created_at, updated_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
        RETURNING `+memberColumns,
		m.UserRef,
		m.FirstName,
		m.LastName,
		m.PhoneNumber,
		nullableInt64(m.DepartmentRef),
		m.JobTitle,
		m.Alias,
		m.DeskID,
		m.PhoneExtension,
		nullableString(m.EmployeeNumber),
		m.Gender,
		m.WorkforceType,
		nullableDate(m.DateOfEmployment),
		m.Country,
		m.City,
		m.DirectManager,
		m.DottedLineManager,
		nullableInt64(m.AttendanceGroupRef),
		string(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
		nullableInt64(m.CreatedByRef),
	)

	created, err := scanMember(row)
	if err != nil {
		return nil, translateMemberPgError(err)
	}
	return created, nil
}

// Update はメンバー情報を更新します。user_id / created_at / created_by は変更しません。
func (r *MemberRepository) Update(ctx context.Context, m *member.Member) (*member.Member, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE members AS m
           SET first_name = $1,
               last_name = $2,
               phone_number = $3,
               department_id = $4,
               job_title = $5,
               alias = $6,
               desk_id = $7,
               phone_extension = $8,
               employee_number = $9,
               gender = $10,
               workforce_type = $11,
               date_of_employment = $12,
               country = $13,
               city = $14,
               direct_manager = $15,
               dotted_line_manager = $16,
               attendance_group_id = $17,
               status = $18,
               updated_at = $19
         WHERE m.id = $20
        RETURNING `+memberColumns,
		m.FirstName,
		m.LastName,
		m.PhoneNumber,
		nullableInt64(m.DepartmentRef),
		m.JobTitle,
		m.Alias,
		m.DeskID,
		m.PhoneExtension,
		nullableString(m.EmployeeNumber),
		m.Gender,
		m.WorkforceType,
		nullableDate(m.DateOfEmployment),
		m.Country,
		m.City,
		m.DirectManager,
		m.DottedLineManager,
		nullableInt64(m.AttendanceGroupRef),
		string(m.Status),
		m.UpdatedAt,
		m.ID,
	)

	updated, err := scanMember(row)
	if err != nil {
		return nil, translateMemberPgError(err)
	}
	return updated, nil
}

// Delete はメンバーを物理削除します。
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return translateMemberPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// FindByID は ID でメンバーを取得します。
func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+memberColumns+`
          FROM members m
         WHERE m.id = $1
         LIMIT 1
    `, id)

	found, err := scanMember(row)
	if err != nil {
		return nil, translateMemberPgError(err)
	}
	return found, nil
}

// FindByUserRef はユーザー ID でメンバーを取得します。
func (r *MemberRepository) FindByUserRef(ctx context.Context, userRef int64) (*member.Member, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+memberColumns+`
          FROM members m
         WHERE m.user_id = $1
         LIMIT 1
    `, userRef)

	found, err := scanMember(row)
	if err != nil {
		return nil, translateMemberPgError(err)
	}
	return found, nil
}

// ExistsByUserRef はユーザー ID に紐づくメンバーが存在するかを返します。
func (r *MemberRepository) ExistsByUserRef(ctx context.Context, userRef int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE user_id = $1)`, userRef)
}

// ExistsByEmployeeNumber は社員番号が使用済みかを返します。
func (r *MemberRepository) ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE employee_number = $1)`, employeeNumber)
}

func (r *MemberRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var found bool
	if err := exec.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// ListByAttendanceGroup は勤怠グループに所属するメンバーを ID 順で返します。
func (r *MemberRepository) ListByAttendanceGroup(ctx context.Context, groupID int64) ([]*member.Member, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+memberColumns+`
          FROM members m
         WHERE m.attendance_group_id = $1
         ORDER BY m.id ASC
    `, groupID)
	if err != nil {
		return nil, translateMemberPgError(err)
	}
	defer rows.Close()

	return collectMembers(rows, 0)
}

// CountByAttendanceGroup は勤怠グループの所属人数を返します。
func (r *MemberRepository) CountByAttendanceGroup(ctx context.Context, groupID int64) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var count int64
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE attendance_group_id = $1`, groupID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// List は条件に一致するメンバーと総件数を返します。
func (r *MemberRepository) List(ctx context.Context, filter member.ListFilter) ([]*member.Member, int64, error) {
	if filter.Limit <= 0 {
		return nil, 0, member.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, 0, member.ErrInvalidPage
	}
	orderBy, err := memberOrderBy(filter.Sort)
	if err != nil {
		return nil, 0, err
	}

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "m.status = "+placeholder)
		args = append(args, string(*filter.Status))
	}

	if term := strings.TrimSpace(filter.Term); term != "" {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "(m.first_name ILIKE "+placeholder+` ESCAPE '\' OR m.last_name ILIKE `+placeholder+` ESCAPE '\')`)
		args = append(args, containsPattern(term))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var total int64
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM members m`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, translateMemberPgError(err)
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT ` + memberColumns + `
          FROM members m` + whereClause + `
         ORDER BY ` + orderBy + `
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateMemberPgError(err)
	}
	defer rows.Close()

	members, err := collectMembers(rows, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func memberOrderBy(s member.Sort) (string, error) {
	direction := "ASC"
	if s.Descending {
		direction = "DESC"
	}

	if s.Field == member.SortByName {
		return "m.last_name " + direction + ", m.first_name " + direction + ", m.id " + direction, nil
	}

	column, ok := memberSortColumns[s.Field]
	if !ok {
		return "", member.ErrInvalidSort
	}
	return column + " " + direction + " NULLS LAST, m.id " + direction, nil
}

func collectMembers(rows pgx.Rows, capacity int) ([]*member.Member, error) {
	members := make([]*member.Member, 0, capacity)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, translateMemberPgError(err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, translateMemberPgError(err)
	}
	return members, nil
}

func scanMember(row pgx.Row) (*member.Member, error) {
	var (
		m              member.Member
		departmentID   sql.NullInt64
		employeeNumber sql.NullString
		employedOn     sql.NullTime
		groupID        sql.NullInt64
		status         string
		createdBy      sql.NullInt64
	)

	if err := row.Scan(
		&m.ID,
		&m.UserRef,
		&m.FirstName,
		&m.LastName,
		&m.PhoneNumber,
		&departmentID,
		&m.JobTitle,
		&m.Alias,
		&m.DeskID,
		&m.PhoneExtension,
		&employeeNumber,
		&m.Gender,
		&m.WorkforceType,
		&employedOn,
		&m.Country,
		&m.City,
		&m.DirectManager,
		&m.DottedLineManager,
		&groupID,
		&status,
		&m.CreatedAt,
		&m.UpdatedAt,
		&createdBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		return nil, err
	}

	m.Status = member.Status(status)
	m.DepartmentRef = int64FromNull(departmentID)
	m.AttendanceGroupRef = int64FromNull(groupID)
	m.CreatedByRef = int64FromNull(createdBy)
	if employeeNumber.Valid {
		v := employeeNumber.String
		m.EmployeeNumber = &v
	}
	if employedOn.Valid {
		t := employedOn.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		m.DateOfEmployment = &date
	}

	return &m, nil
}

func int64FromNull(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func translateMemberPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return member.ErrMemberNotFound
	}

	if pgErr, ok := asPgError(err); ok {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case membersUserIDKey:
				return member.ErrUserAlreadyBound
			case membersEmployeeNumberKey:
				return member.ErrEmployeeNumberTaken
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == membersGroupFkey {
				return attendance.ErrGroupNotFound
			}
		case checkViolationCode:
			return member.ErrInvalidStatus
		}
	}

	return err
}
