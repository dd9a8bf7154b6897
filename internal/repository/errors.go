package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// 约束类错误的哨兵，调用方用 errors.Is 判断后映射成对应的 HTTP 状态
var (
	// ErrAlreadyExists 唯一约束冲突（邮箱重复、关联重复、重复评分）
	ErrAlreadyExists = errors.New("记录已存在")
	// ErrRelatedMissing 外键约束冲突：插入时引用的记录不存在，或删除时仍被引用
	ErrRelatedMissing = errors.New("关联记录不存在或仍被引用")
	// ErrNoFieldsToPatch patch 载荷里没有任何可更新字段
	ErrNoFieldsToPatch = errors.New("没有可更新的字段")
)

// PostgreSQL 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraintError 把驱动层的约束错误翻译成哨兵错误，
// 其他错误原样返回。
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists
		case pgForeignKeyViolation:
			return ErrRelatedMissing
		}
	}
	return err
}
