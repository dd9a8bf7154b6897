package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type ViewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// ListByProfile 查询某档案的全部评分，内嵌对应电影。
// 内联接保证只返回存在的关联，json_agg 结果经聚合映射展开。
func (r *ViewRepository) ListByProfile(profileID int) ([]*model.ViewAggregated, error) {
	rows, err := r.db.Raw(`
		SELECT v.id, v.score, v.profile_id, v.movie_id,
		       json_agg(row_to_json(m)) AS movie
		FROM views v
		INNER JOIN movies m ON m.id = v.movie_id
		WHERE v.profile_id = ?
		GROUP BY v.id
	`, profileID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]*model.ViewAggregated, 0)
	for rows.Next() {
		var row viewRow
		if err := rows.Scan(&row.ID, &row.Score, &row.ProfileID, &row.MovieID, &row.Movie); err != nil {
			return nil, err
		}
		views = append(views, mapViewAggregatedRow(row))
	}
	return views, rows.Err()
}

// Create 创建评分。
// 同一 (profileId, movieId) 已有评分时返回 ErrAlreadyExists，
// 档案或电影不存在时返回 ErrRelatedMissing。
func (r *ViewRepository) Create(view *model.View) error {
	if err := r.db.Create(view).Error; err != nil {
		return translateConstraintError(err)
	}
	return nil
}

// UpdateScore 只更新分数，按 (profileId, movieId) 定位。
// 返回受影响行数，0 表示评分不存在。
func (r *ViewRepository) UpdateScore(profileID, movieID, score int) (int64, error) {
	tx := r.db.Model(&model.View{}).
		Where("profile_id = ? AND movie_id = ?", profileID, movieID).
		Update("score", score)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Delete 按 (profileId, movieId) 删除评分，返回受影响行数
func (r *ViewRepository) Delete(profileID, movieID int) (int64, error) {
	tx := r.db.Where("profile_id = ? AND movie_id = ?", profileID, movieID).
		Delete(&model.View{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
