package member

import "context"

// Repository はメンバー永続化の抽象です。
//
// 一意性（user_ref / employee_number）はサービス層で事前確認しますが、
// 実装側は一意制約違反を ErrUserAlreadyBound / ErrEmployeeNumberTaken に変換して返す必要があります。
type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	Update(ctx context.Context, m *Member) (*Member, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Member, error)
	FindByUserRef(ctx context.Context, userRef int64) (*Member, error)
	ExistsByUserRef(ctx context.Context, userRef int64) (bool, error)
	ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error)
	ListByAttendanceGroup(ctx context.Context, groupID int64) ([]*Member, error)
	CountByAttendanceGroup(ctx context.Context, groupID int64) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]*Member, int64, error)
}

// SortField は一覧の並び替えキーです。
type SortField string

const (
	SortByName           SortField = ""
	SortByFirstName      SortField = "first_name"
	SortByLastName       SortField = "last_name"
	SortByEmployeeNumber SortField = "employee_number"
	SortByCreatedAt      SortField = "created_at"
)

// IsValid は並び替え可能なキーかを返します。
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByFirstName, SortByLastName, SortByEmployeeNumber, SortByCreatedAt:
		return true
	default:
		return false
	}
}

// Sort は並び順の指定です。Field が空の場合は姓・名の昇順になります。
type Sort struct {
	Field      SortField
	Descending bool
}

// ListFilter は一覧取得用フィルタです。Term は名・姓の部分一致（大文字小文字を区別しない）に使われます。
type ListFilter struct {
	Status *Status
	Term   string
	Sort   Sort
	Limit  int
	Offset int
}
