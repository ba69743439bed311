package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound は更新・削除対象のレコードが存在しないことを表す。
var ErrNotFound = errors.New("record not found")

// PostgreSQLのSQLSTATEコード
const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

// IsUniqueViolation はerrが一意制約違反に起因するかどうかを返す。
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// IsForeignKeyViolation はerrが外部キー制約違反に起因するかどうかを返す。
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// checkAffected はDELETE/UPDATEの影響行数が0の場合にErrNotFoundを返す。
func checkAffected(result sql.Result, entity string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}
