package member

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ogurasousui/hcm-member-service/internal/core/attendance"
	"go.uber.org/zap"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// 各テキスト項目の最大文字数です。
const (
	maxNameLength     = 100
	maxShortLength    = 20
	maxIdentLength    = 50
	maxLocationLength = 100
)

// Option は Service / Coordinator の任意依存を設定します。
type Option func(*options)

type options struct {
	logger *zap.Logger
	groups attendance.Repository
}

// WithLogger は操作ログの出力先を設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGroupDirectory は勤怠グループの存在確認に使うリポジトリを設定します。
// 未設定の場合、グループ ID は呼び出し側で検証済みとして扱います。
func WithGroupDirectory(groups attendance.Repository) Option {
	return func(o *options) {
		o.groups = groups
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Service はメンバーのライフサイクルに関するユースケースをまとめます。メンバー状態の唯一の書き手です。
type Service struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	groups attendance.Repository
	logger *zap.Logger
}

// UseCase はメンバーユースケースの公開インターフェースです。
type UseCase interface {
	CreateMember(ctx context.Context, in CreateMemberInput) (*Member, error)
	GetMember(ctx context.Context, in GetMemberInput) (*Member, error)
	GetMemberByUser(ctx context.Context, in GetMemberByUserInput) (*Member, error)
	ListActiveMembers(ctx context.Context, in ListMembersInput) (*ListMembersResult, error)
	SearchMembers(ctx context.Context, in SearchMembersInput) (*ListMembersResult, error)
	UpdateMember(ctx context.Context, in UpdateMemberInput) (*Member, error)
	DeleteMember(ctx context.Context, in DeleteMemberInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	o := buildOptions(opts)
	return &Service{repo: repo, clock: clock, tx: tx, groups: o.groups, logger: o.logger}
}

// ProfileFields はメンバーのプロフィール項目です。nil の項目は変更しません。
type ProfileFields struct {
	FirstName          *string
	LastName           *string
	PhoneNumber        *string
	DepartmentRef      *int64
	JobTitle           *string
	Alias              *string
	DeskID             *string
	PhoneExtension     *string
	EmployeeNumber     *string
	Gender             *string
	WorkforceType      *string
	DateOfEmployment   *time.Time
	Country            *string
	City               *string
	DirectManager      *string
	DottedLineManager  *string
	AttendanceGroupRef *int64
}

// CreateMemberInput はメンバー作成時の入力です。
type CreateMemberInput struct {
	UserRef  int64
	ActorRef *int64
	ProfileFields
}

// UpdateMemberInput はメンバー更新時の入力です。
type UpdateMemberInput struct {
	ID       int64
	ActorRef *int64
	Status   *Status
	ProfileFields
}

// GetMemberInput はメンバー取得時の入力です。
type GetMemberInput struct {
	ID int64
}

// GetMemberByUserInput はユーザー参照によるメンバー取得時の入力です。
type GetMemberByUserInput struct {
	UserRef int64
}

// DeleteMemberInput はメンバー削除時の入力です。
type DeleteMemberInput struct {
	ID       int64
	ActorRef *int64
}

// PageRequest はページ番号（0 始まり）、件数、並び順の指定です。
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// ListMembersInput は在籍メンバー一覧の入力です。
type ListMembersInput struct {
	PageRequest
}

// SearchMembersInput はメンバー検索の入力です。
type SearchMembersInput struct {
	Term string
	PageRequest
}

// ListMembersResult は一覧取得結果を表します。
type ListMembersResult struct {
	Members []*Member
	Page    int
	Size    int
	Total   int64
}

// TotalPages は総ページ数を返します。
func (r *ListMembersResult) TotalPages() int {
	if r == nil || r.Size <= 0 {
		return 0
	}
	size := int64(r.Size)
	return int((r.Total + size - 1) / size)
}

// CreateMember は新しいメンバーを作成します。
func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (*Member, error) {
	if in.UserRef <= 0 {
		return nil, fmt.Errorf("user_ref: %w", ErrInvalidUserRef)
	}

	m := &Member{UserRef: in.UserRef, Status: StatusActive}
	if err := applyProfile(m, in.ProfileFields); err != nil {
		return nil, err
	}

	var created *Member
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		bound, err := s.repo.ExistsByUserRef(txCtx, m.UserRef)
		if err != nil {
			return err
		}
		if bound {
			return fmt.Errorf("user_ref %d: %w", m.UserRef, ErrUserAlreadyBound)
		}

		if m.EmployeeNumber != nil {
			if err := s.ensureEmployeeNumberNotExists(txCtx, *m.EmployeeNumber); err != nil {
				return err
			}
		}

		if m.AttendanceGroupRef != nil {
			if err := s.ensureGroupAssignable(txCtx, *m.AttendanceGroupRef); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		m.CreatedAt = now
		m.UpdatedAt = now
		m.CreatedByRef = cloneInt64(in.ActorRef)

		result, err := s.repo.Create(txCtx, m)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("member created",
		zap.Int64("member_id", created.ID),
		zap.Int64("user_ref", created.UserRef),
		actorField(in.ActorRef),
	)
	return created, nil
}

// GetMember は ID でメンバーを取得します。
func (s *Service) GetMember(ctx context.Context, in GetMemberInput) (*Member, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Member
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// GetMemberByUser は認証ユーザーに紐づくメンバーを取得します。
func (s *Service) GetMemberByUser(ctx context.Context, in GetMemberByUserInput) (*Member, error) {
	if in.UserRef <= 0 {
		return nil, fmt.Errorf("user_ref: %w", ErrInvalidUserRef)
	}

	var result *Member
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByUserRef(txCtx, in.UserRef)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListActiveMembers は在籍中（ACTIVE）のメンバーをページ単位で取得します。
func (s *Service) ListActiveMembers(ctx context.Context, in ListMembersInput) (*ListMembersResult, error) {
	return s.listActive(ctx, "", in.PageRequest)
}

// SearchMembers は名・姓の部分一致で在籍メンバーを検索します。空の検索語は一覧取得と同じ結果になります。
func (s *Service) SearchMembers(ctx context.Context, in SearchMembersInput) (*ListMembersResult, error) {
	return s.listActive(ctx, strings.TrimSpace(in.Term), in.PageRequest)
}

func (s *Service) listActive(ctx context.Context, term string, page PageRequest) (*ListMembersResult, error) {
	size, offset, err := normalizePage(page)
	if err != nil {
		return nil, err
	}
	if !page.Sort.Field.IsValid() {
		return nil, fmt.Errorf("sort %q: %w", page.Sort.Field, ErrInvalidSort)
	}

	active := StatusActive
	filter := ListFilter{
		Status: &active,
		Term:   term,
		Sort:   page.Sort,
		Limit:  size,
		Offset: offset,
	}

	var (
		members []*Member
		total   int64
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, count, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		members = found
		total = count
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListMembersResult{Members: members, Page: page.Page, Size: size, Total: total}, nil
}

// UpdateMember はメンバー情報を部分更新します。
func (s *Service) UpdateMember(ctx context.Context, in UpdateMemberInput) (*Member, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var updated *Member
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		previousNumber := cloneString(existing.EmployeeNumber)
		previousGroup := cloneInt64(existing.AttendanceGroupRef)

		if err := applyProfile(existing, in.ProfileFields); err != nil {
			return err
		}

		if existing.EmployeeNumber != nil && !sameString(previousNumber, existing.EmployeeNumber) {
			if err := s.ensureEmployeeNumberNotExists(txCtx, *existing.EmployeeNumber); err != nil {
				return err
			}
		}

		if existing.AttendanceGroupRef != nil && !sameInt64(previousGroup, existing.AttendanceGroupRef) {
			if err := s.ensureGroupAssignable(txCtx, *existing.AttendanceGroupRef); err != nil {
				return err
			}
		}

		if in.Status != nil {
			existing.Status = *in.Status
		}

		touch(existing, s.clock.Now())

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("member updated", zap.Int64("member_id", updated.ID), actorField(in.ActorRef))
	return updated, nil
}

// DeleteMember はメンバーを物理削除します。
func (s *Service) DeleteMember(ctx context.Context, in DeleteMemberInput) error {
	if in.ID <= 0 {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	}); err != nil {
		return err
	}

	s.logger.Info("member deleted", zap.Int64("member_id", in.ID), actorField(in.ActorRef))
	return nil
}

func (s *Service) ensureEmployeeNumberNotExists(ctx context.Context, number string) error {
	exists, err := s.repo.ExistsByEmployeeNumber(ctx, number)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("employee_number %q: %w", number, ErrEmployeeNumberTaken)
	}
	return nil
}

func (s *Service) ensureGroupAssignable(ctx context.Context, groupID int64) error {
	if groupID <= 0 {
		return fmt.Errorf("attendance_group_ref: %w", ErrInvalidGroupRef)
	}
	if s.groups == nil {
		return nil
	}
	_, err := attendance.EnsureAssignable(ctx, s.groups, groupID)
	return err
}

// touch は更新日時を進めます。updated_at が created_at を下回ることはありません。
func touch(m *Member, now time.Time) {
	if now.Before(m.CreatedAt) {
		now = m.CreatedAt
	}
	m.UpdatedAt = now
}

func applyProfile(m *Member, f ProfileFields) error {
	texts := []struct {
		name  string
		value *string
		dest  *string
		limit int
	}{
		{"first_name", f.FirstName, &m.FirstName, maxNameLength},
		{"last_name", f.LastName, &m.LastName, maxNameLength},
		{"phone_number", f.PhoneNumber, &m.PhoneNumber, maxShortLength},
		{"job_title", f.JobTitle, &m.JobTitle, maxNameLength},
		{"alias", f.Alias, &m.Alias, maxNameLength},
		{"desk_id", f.DeskID, &m.DeskID, maxIdentLength},
		{"phone_extension", f.PhoneExtension, &m.PhoneExtension, maxShortLength},
		{"gender", f.Gender, &m.Gender, maxShortLength},
		{"workforce_type", f.WorkforceType, &m.WorkforceType, maxIdentLength},
		{"country", f.Country, &m.Country, maxLocationLength},
		{"city", f.City, &m.City, maxLocationLength},
		{"direct_manager", f.DirectManager, &m.DirectManager, maxNameLength},
		{"dotted_line_manager", f.DottedLineManager, &m.DottedLineManager, maxNameLength},
	}

	for _, t := range texts {
		if t.value == nil {
			continue
		}
		v, err := normalizeText(t.name, *t.value, t.limit)
		if err != nil {
			return err
		}
		*t.dest = v
	}

	if f.EmployeeNumber != nil {
		v, err := normalizeText("employee_number", *f.EmployeeNumber, maxIdentLength)
		if err != nil {
			return err
		}
		if v == "" {
			m.EmployeeNumber = nil
		} else {
			m.EmployeeNumber = &v
		}
	}

	if f.DepartmentRef != nil {
		if *f.DepartmentRef <= 0 {
			return fmt.Errorf("department_ref: %w", ErrInvalidDepartmentRef)
		}
		m.DepartmentRef = cloneInt64(f.DepartmentRef)
	}

	if f.AttendanceGroupRef != nil {
		if *f.AttendanceGroupRef <= 0 {
			return fmt.Errorf("attendance_group_ref: %w", ErrInvalidGroupRef)
		}
		m.AttendanceGroupRef = cloneInt64(f.AttendanceGroupRef)
	}

	if f.DateOfEmployment != nil {
		m.DateOfEmployment = normalizeDate(f.DateOfEmployment)
	}

	return nil
}

func normalizeText(field, raw string, limit int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > limit {
		return "", fmt.Errorf("%s: %w", field, ErrFieldTooLong)
	}
	return trimmed, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}

func normalizePage(page PageRequest) (size, offset int, err error) {
	if page.Page < 0 {
		return 0, 0, ErrInvalidPage
	}

	size = page.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		return 0, 0, ErrInvalidPageSize
	}
	if page.Page > math.MaxInt/size {
		return 0, 0, ErrInvalidPage
	}

	return size, page.Page * size, nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func actorField(actor *int64) zap.Field {
	if actor == nil {
		return zap.Skip()
	}
	return zap.Int64("actor_id", *actor)
}
