package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type MovieStaffRepository struct {
	db *gorm.DB
}

func NewMovieStaffRepository(db *gorm.DB) *MovieStaffRepository {
	return &MovieStaffRepository{db: db}
}

// ListStaffByMovie 查询某电影的演职人员，内嵌人员信息
func (r *MovieStaffRepository) ListStaffByMovie(movieID int) ([]*model.MovieStaffAggregated, error) {
	rows, err := r.db.Raw(`
		SELECT ms.id, ms.role_name,
		       json_agg(row_to_json(sm)) AS member
		FROM movie_staff ms
		INNER JOIN staff_members sm ON sm.id = ms.staff_member_id
		WHERE ms.movie_id = ?
		GROUP BY ms.id
	`, movieID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movieStaff := make([]*model.MovieStaffAggregated, 0)
	for rows.Next() {
		var row movieStaffRow
		if err := rows.Scan(&row.ID, &row.RoleName, &row.Member); err != nil {
			return nil, err
		}
		movieStaff = append(movieStaff, mapMovieStaffRow(row))
	}
	return movieStaff, rows.Err()
}

// ListMoviesByStaff 查询某人员参与的电影，内嵌电影信息
func (r *MovieStaffRepository) ListMoviesByStaff(staffMemberID int) ([]*model.StaffMovieAggregated, error) {
	rows, err := r.db.Raw(`
		SELECT ms.id, ms.role_name,
		       json_agg(row_to_json(m)) AS movie
		FROM movie_staff ms
		INNER JOIN movies m ON m.id = ms.movie_id
		WHERE ms.staff_member_id = ?
		GROUP BY ms.id
	`, staffMemberID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staffMovies := make([]*model.StaffMovieAggregated, 0)
	for rows.Next() {
		var row movieStaffRow
		if err := rows.Scan(&row.ID, &row.RoleName, &row.Movie); err != nil {
			return nil, err
		}
		staffMovies = append(staffMovies, mapStaffMovieRow(row))
	}
	return staffMovies, rows.Err()
}

// CreateLink 建立电影-人员关联。
// 同一 (movieId, staffMemberId) 已关联时返回 ErrAlreadyExists，
// 电影或人员不存在时返回 ErrRelatedMissing。
func (r *MovieStaffRepository) CreateLink(movieID, staffMemberID int, roleName string) error {
	link := &model.MovieStaff{
		MovieID:       movieID,
		StaffMemberID: staffMemberID,
		RoleName:      roleName,
	}
	if err := r.db.Create(link).Error; err != nil {
		return translateConstraintError(err)
	}
	return nil
}

// UpdateRoleByMovie 修改角色名，同时按电影 ID 限定，防止跨电影改到猜出来的关联 ID。
// 返回受影响行数，0 表示关联不存在或不属于该电影。
func (r *MovieStaffRepository) UpdateRoleByMovie(linkID, movieID int, roleName string) (int64, error) {
	tx := r.db.Model(&model.MovieStaff{}).
		Where("id = ? AND movie_id = ?", linkID, movieID).
		Update("role_name", roleName)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// UpdateRoleByStaff 修改角色名，按人员 ID 限定
func (r *MovieStaffRepository) UpdateRoleByStaff(linkID, staffMemberID int, roleName string) (int64, error) {
	tx := r.db.Model(&model.MovieStaff{}).
		Where("id = ? AND staff_member_id = ?", linkID, staffMemberID).
		Update("role_name", roleName)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// DeleteByMovie 按关联 ID 删除，同时按电影 ID 限定，返回受影响行数
func (r *MovieStaffRepository) DeleteByMovie(linkID, movieID int) (int64, error) {
	tx := r.db.Where("id = ? AND movie_id = ?", linkID, movieID).
		Delete(&model.MovieStaff{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// DeleteByStaff 按关联 ID 删除，按人员 ID 限定，返回受影响行数
func (r *MovieStaffRepository) DeleteByStaff(linkID, staffMemberID int) (int64, error) {
	tx := r.db.Where("id = ? AND staff_member_id = ?", linkID, staffMemberID).
		Delete(&model.MovieStaff{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
