// Package apperr はドメイン層のエラー種別を定義します。
//
// 各ドメインパッケージのセンチネルエラーはいずれかの種別をラップし、
// 呼び出し側は errors.Is で種別を判定できます。
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound は参照先が存在しないことを表します。
	ErrNotFound = errors.New("not found")
	// ErrConflict は一意制約違反など状態の衝突を表します。
	ErrConflict = errors.New("conflict")
	// ErrValidation は入力値の不備を表します。
	ErrValidation = errors.New("validation failed")
)

// New は種別 kind をラップしたセンチネルエラーを生成します。
func New(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// IsNotFound は err が ErrNotFound 種別かを判定します。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict は err が ErrConflict 種別かを判定します。
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation は err が ErrValidation 種別かを判定します。
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
