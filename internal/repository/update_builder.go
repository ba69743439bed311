package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// updateBuilder は部分更新用のUPDATE文をsquirrelで組み立てる。
// 指定されたカラムのみをSET句に含め、updated_atは常に現在時刻で更新する。
type updateBuilder struct {
	columns []string
	values  []any
}

// set はカラムへの代入を追加する。
func (b *updateBuilder) set(column string, value any) {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
}

// build はidで対象行を絞り込み、returningの列を返すUPDATE文とその引数を返す。
func (b *updateBuilder) build(table string, id int64, returning string) (string, []any, error) {
	q := sq.Update(table).PlaceholderFormat(sq.Dollar)
	for i, col := range b.columns {
		q = q.Set(col, b.values[i])
	}
	return q.Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + returning).
		ToSql()
}
