package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// MoviePatch 电影 patch 载荷，nil 表示不修改。
// 派生字段 viewCount / scoreAverage 不在允许列表内，只能通过 RecalculateStats 更新。
type MoviePatch struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// ListAll 获取所有电影
func (r *MovieRepository) ListAll() ([]*model.Movie, error) {
	rows, err := r.db.Raw(`
		SELECT id, name, description, image_url, view_count, score_average
		FROM movies
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]*model.Movie, 0)
	for rows.Next() {
		var row movieRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.ImageURL, &row.ViewCount, &row.ScoreAverage); err != nil {
			return nil, err
		}
		movies = append(movies, mapMovieRow(row))
	}
	return movies, rows.Err()
}

// FindByID 根据 ID 查找电影，不存在时返回 (nil, nil)
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	rows, err := r.db.Raw(`
		SELECT id, name, description, image_url, view_count, score_average
		FROM movies WHERE id = ?
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var row movieRow
	if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.ImageURL, &row.ViewCount, &row.ScoreAverage); err != nil {
		return nil, err
	}
	return mapMovieRow(row), nil
}

// Create 创建电影，派生字段由调用方清零
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// Patch 只更新提供的字段，返回受影响行数，0 表示电影不存在
func (r *MovieRepository) Patch(id int, patch MoviePatch) (int64, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	if len(fields) == 0 {
		return 0, ErrNoFieldsToPatch
	}

	tx := r.db.Model(&model.Movie{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Delete 删除电影，返回受影响行数。
// 仍有关联记录（类型、演职人员、评分）时由外键约束拒绝。
func (r *MovieRepository) Delete(id int) (int64, error) {
	tx := r.db.Delete(&model.Movie{}, id)
	if tx.Error != nil {
		return 0, translateConstraintError(tx.Error)
	}
	return tx.RowsAffected, nil
}

// RecalculateStats 按当前评分集合重算 view_count 和 score_average。
// 单条原子语句完成，避免读后写竞争；没有任何评分时重置为 0。
// 返回受影响行数，0 表示电影不存在。
func (r *MovieRepository) RecalculateStats(movieID int) (int64, error) {
	tx := r.db.Exec(`
		UPDATE movies SET
			view_count = (SELECT COUNT(*) FROM views WHERE views.movie_id = movies.id),
			score_average = COALESCE((SELECT AVG(score) FROM views WHERE views.movie_id = movies.id), 0)
		WHERE id = ?
	`, movieID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
