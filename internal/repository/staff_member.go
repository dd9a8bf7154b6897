package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type StaffMemberRepository struct {
	db *gorm.DB
}

func NewStaffMemberRepository(db *gorm.DB) *StaffMemberRepository {
	return &StaffMemberRepository{db: db}
}

// StaffMemberPatch 演职人员 patch 载荷，nil 表示不修改
type StaffMemberPatch struct {
	Name     *string
	LastName *string
}

// ListAll 获取所有演职人员
func (r *StaffMemberRepository) ListAll() ([]*model.StaffMember, error) {
	rows, err := r.db.Raw(`SELECT id, name, last_name FROM staff_members`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*model.StaffMember, 0)
	for rows.Next() {
		var row staffMemberRow
		if err := rows.Scan(&row.ID, &row.Name, &row.LastName); err != nil {
			return nil, err
		}
		members = append(members, mapStaffMemberRow(row))
	}
	return members, rows.Err()
}

// FindByID 根据 ID 查找演职人员，不存在时返回 (nil, nil)
func (r *StaffMemberRepository) FindByID(id int) (*model.StaffMember, error) {
	rows, err := r.db.Raw(`SELECT id, name, last_name FROM staff_members WHERE id = ?`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var row staffMemberRow
	if err := rows.Scan(&row.ID, &row.Name, &row.LastName); err != nil {
		return nil, err
	}
	return mapStaffMemberRow(row), nil
}

// Create 创建演职人员
func (r *StaffMemberRepository) Create(member *model.StaffMember) error {
	return r.db.Create(member).Error
}

// Patch 只更新提供的字段，返回受影响行数，0 表示人员不存在
func (r *StaffMemberRepository) Patch(id int, patch StaffMemberPatch) (int64, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if len(fields) == 0 {
		return 0, ErrNoFieldsToPatch
	}

	tx := r.db.Model(&model.StaffMember{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Delete 删除演职人员，返回受影响行数，仍被电影引用时由外键约束拒绝
func (r *StaffMemberRepository) Delete(id int) (int64, error) {
	tx := r.db.Delete(&model.StaffMember{}, id)
	if tx.Error != nil {
		return 0, translateConstraintError(tx.Error)
	}
	return tx.RowsAffected, nil
}
