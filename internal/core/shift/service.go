package shift

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

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
	defaultPageSize      = 20
	maxPageSize          = 200
	maxNameLength        = 100
	maxDescriptionLength = 255
)

// Service はシフト定義に関するユースケースをまとめます。
type Service struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	logger *zap.Logger
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error)
	GetShift(ctx context.Context, in GetShiftInput) (*Shift, error)
	ListShifts(ctx context.Context, in ListShiftsInput) (*ListShiftsResult, error)
	UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error)
	DeleteShift(ctx context.Context, in DeleteShiftInput) error
}

// NewService は Service を生成します。logger が nil の場合はログを出力しません。
func NewService(repo Repository, clock Clock, tx TransactionManager, logger *zap.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, clock: clock, tx: tx, logger: logger}
}

// CreateShiftInput はシフト作成時の入力です。時刻は "HH:MM" 形式です。
type CreateShiftInput struct {
	Name         string
	Description  string
	StartTime    string
	EndTime      string
	BreakMinutes int
	ActorRef     *int64
}

// UpdateShiftInput はシフト更新時の入力です。nil の項目は変更しません。
type UpdateShiftInput struct {
	ID           int64
	Name         *string
	Description  *string
	StartTime    *string
	EndTime      *string
	BreakMinutes *int
	Status       *Status
	ActorRef     *int64
}

// GetShiftInput はシフト取得時の入力です。
type GetShiftInput struct {
	ID int64
}

// DeleteShiftInput はシフト削除時の入力です。
type DeleteShiftInput struct {
	ID       int64
	ActorRef *int64
}

// ListShiftsInput は一覧取得時の入力です。
type ListShiftsInput struct {
	Search string
	Status *Status
	Page   int
	Size   int
}

// ListShiftsResult は一覧取得結果を表します。
type ListShiftsResult struct {
	Shifts []*Shift
	Page   int
	Size   int
	Total  int64
}

// CreateShift は新しいシフトを作成します。
func (s *Service) CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	start, err := ParseClockTime(strings.TrimSpace(in.StartTime))
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseClockTime(strings.TrimSpace(in.EndTime))
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}

	now := s.clock.Now()
	sh := &Shift{
		Name:         name,
		Description:  description,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: in.BreakMinutes,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedByRef: cloneInt64(in.ActorRef),
		UpdatedByRef: cloneInt64(in.ActorRef),
	}
	if err := validateBreak(sh); err != nil {
		return nil, err
	}

	var created *Shift
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, sh)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("shift created", zap.Int64("shift_id", created.ID), actorField(in.ActorRef))
	return created, nil
}

// GetShift はシフトを取得します。論理削除済みのシフトは存在しないものとして扱います。
func (s *Service) GetShift(ctx context.Context, in GetShiftInput) (*Shift, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.findLive(txCtx, in.ID)
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

// ListShifts は名称検索と状態で絞り込んだシフト一覧を取得します。
func (s *Service) ListShifts(ctx context.Context, in ListShiftsInput) (*ListShiftsResult, error) {
	if in.Page < 0 {
		return nil, ErrInvalidPage
	}
	size := in.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		return nil, ErrInvalidPageSize
	}
	if in.Page > math.MaxInt/size {
		return nil, ErrInvalidPage
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	filter := ListFilter{
		Term:   strings.TrimSpace(in.Search),
		Status: in.Status,
		Limit:  size,
		Offset: in.Page * size,
	}

	var (
		shifts []*Shift
		total  int64
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, count, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		shifts = found
		total = count
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListShiftsResult{Shifts: shifts, Page: in.Page, Size: size, Total: total}, nil
}

// UpdateShift はシフトを部分更新します。
func (s *Service) UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Status != nil && (!in.Status.IsValid() || *in.Status == StatusDeleted) {
		return nil, ErrInvalidStatus
	}

	var updated *Shift
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.findLive(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			existing.Name = name
		}

		if in.Description != nil {
			description, err := normalizeDescription(*in.Description)
			if err != nil {
				return err
			}
			existing.Description = description
		}

		if in.StartTime != nil {
			start, err := ParseClockTime(strings.TrimSpace(*in.StartTime))
			if err != nil {
				return fmt.Errorf("start_time: %w", err)
			}
			existing.StartTime = start
		}

		if in.EndTime != nil {
			end, err := ParseClockTime(strings.TrimSpace(*in.EndTime))
			if err != nil {
				return fmt.Errorf("end_time: %w", err)
			}
			existing.EndTime = end
		}

		if in.BreakMinutes != nil {
			existing.BreakMinutes = *in.BreakMinutes
		}

		if err := validateBreak(existing); err != nil {
			return err
		}

		if in.Status != nil {
			existing.Status = *in.Status
		}

		stamp(existing, s.clock.Now(), in.ActorRef)

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("shift updated", zap.Int64("shift_id", updated.ID), actorField(in.ActorRef))
	return updated, nil
}

// DeleteShift はシフトを論理削除します。行は残り、状態が DELETED になります。
func (s *Service) DeleteShift(ctx context.Context, in DeleteShiftInput) error {
	if in.ID <= 0 {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.findLive(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.Status = StatusDeleted
		stamp(existing, s.clock.Now(), in.ActorRef)

		_, err = s.repo.Update(txCtx, existing)
		return err
	}); err != nil {
		return err
	}

	s.logger.Info("shift deleted", zap.Int64("shift_id", in.ID), actorField(in.ActorRef))
	return nil
}

func (s *Service) findLive(ctx context.Context, id int64) (*Shift, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found.Status == StatusDeleted {
		return nil, ErrShiftNotFound
	}
	return found, nil
}

func stamp(sh *Shift, now time.Time, actor *int64) {
	if now.Before(sh.CreatedAt) {
		now = sh.CreatedAt
	}
	sh.UpdatedAt = now
	sh.UpdatedByRef = cloneInt64(actor)
}

func validateBreak(sh *Shift) error {
	if sh.BreakMinutes < 0 || sh.BreakMinutes >= sh.SpanMinutes() {
		return fmt.Errorf("break_minutes %d: %w", sh.BreakMinutes, ErrInvalidBreak)
	}
	return nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", fmt.Errorf("name: %w", ErrFieldTooLong)
	}
	return trimmed, nil
}

func normalizeDescription(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return "", fmt.Errorf("description: %w", ErrFieldTooLong)
	}
	return trimmed, nil
}

func actorField(actor *int64) zap.Field {
	if actor == nil {
		return zap.Skip()
	}
	return zap.Int64("actor_id", *actor)
}
