package shift

import "context"

// Repository はシフト永続化の抽象です。削除は状態更新で表現するため Delete は持ちません。
type Repository interface {
	Create(ctx context.Context, s *Shift) (*Shift, error)
	Update(ctx context.Context, s *Shift) (*Shift, error)
	FindByID(ctx context.Context, id int64) (*Shift, error)
	List(ctx context.Context, filter ListFilter) ([]*Shift, int64, error)
}

// ListFilter は一覧取得用フィルタです。
// Status が nil の場合は論理削除済みを除いた全件が対象になります。
type ListFilter struct {
	Term   string
	Status *Status
	Limit  int
	Offset int
}
