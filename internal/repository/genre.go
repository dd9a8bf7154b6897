package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// GenrePatch 类型 patch 载荷，nil 表示不修改
type GenrePatch struct {
	Name *string
}

// ListAll 获取所有类型
func (r *GenreRepository) ListAll() ([]*model.Genre, error) {
	rows, err := r.db.Raw(`SELECT id, name FROM genres`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]*model.Genre, 0)
	for rows.Next() {
		var row genreRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, err
		}
		genres = append(genres, mapGenreRow(row))
	}
	return genres, rows.Err()
}

// FindByID 根据 ID 查找类型，不存在时返回 (nil, nil)
func (r *GenreRepository) FindByID(id int) (*model.Genre, error) {
	rows, err := r.db.Raw(`SELECT id, name FROM genres WHERE id = ?`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var row genreRow
	if err := rows.Scan(&row.ID, &row.Name); err != nil {
		return nil, err
	}
	return mapGenreRow(row), nil
}

// Create 创建类型
func (r *GenreRepository) Create(genre *model.Genre) error {
	return r.db.Create(genre).Error
}

// Patch 只更新提供的字段，返回受影响行数，0 表示类型不存在
func (r *GenreRepository) Patch(id int, patch GenrePatch) (int64, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if len(fields) == 0 {
		return 0, ErrNoFieldsToPatch
	}

	tx := r.db.Model(&model.Genre{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Delete 删除类型，返回受影响行数，仍被电影引用时由外键约束拒绝
func (r *GenreRepository) Delete(id int) (int64, error) {
	tx := r.db.Delete(&model.Genre{}, id)
	if tx.Error != nil {
		return 0, translateConstraintError(tx.Error)
	}
	return tx.RowsAffected, nil
}
