package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintError(t *testing.T) {
	plain := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"唯一约束冲突", &pgconn.PgError{Code: "23505"}, ErrAlreadyExists},
		{"外键约束冲突", &pgconn.PgError{Code: "23503"}, ErrRelatedMissing},
		{"其他数据库错误原样返回", &pgconn.PgError{Code: "42P01"}, nil},
		{"非数据库错误原样返回", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateConstraintError(tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
			} else {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestTranslateConstraintError_Wrapped(t *testing.T) {
	// gorm 可能包装驱动错误，errors.As 仍要能解出来
	wrapped := fmt.Errorf("创建记录失败: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, translateConstraintError(wrapped), ErrAlreadyExists)
}
