package repository

import (
	"github.com/user/streamify/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ProfilePatch 档案 patch 载荷，nil 表示不修改
type ProfilePatch struct {
	Name     *string
	LastName *string
	Email    *string
	Password *string
}

// Create 创建档案，密码以 bcrypt 哈希存储。
// 邮箱重复时返回 ErrAlreadyExists。
func (r *ProfileRepository) Create(name, lastName, email, password string) (*model.Profile, error) {
	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Name:     name,
		LastName: lastName,
		Email:    email,
		Password: string(hash),
	}

	if err := r.db.Create(profile).Error; err != nil {
		return nil, translateConstraintError(err)
	}
	return profile, nil
}

// FindByEmail 根据邮箱查找档案，不存在时返回 (nil, nil)
func (r *ProfileRepository) FindByEmail(email string) (*model.Profile, error) {
	rows, err := r.db.Raw(`
		SELECT id, name, last_name, email, password FROM profiles WHERE email = ?
	`, email).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var row profileRow
	if err := rows.Scan(&row.ID, &row.Name, &row.LastName, &row.Email, &row.Password); err != nil {
		return nil, err
	}
	return mapProfileRow(row), nil
}

// FindByID 根据 ID 查找档案，不存在时返回 (nil, nil)
func (r *ProfileRepository) FindByID(id int) (*model.Profile, error) {
	rows, err := r.db.Raw(`
		SELECT id, name, last_name, email, password FROM profiles WHERE id = ?
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var row profileRow
	if err := rows.Scan(&row.ID, &row.Name, &row.LastName, &row.Email, &row.Password); err != nil {
		return nil, err
	}
	return mapProfileRow(row), nil
}

// CheckPassword 验证密码
func (r *ProfileRepository) CheckPassword(profile *model.Profile, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password))
	return err == nil
}

// Patch 只更新提供的字段，密码重新哈希后存储。
// 返回受影响行数，0 表示档案不存在；新邮箱已被占用时返回 ErrAlreadyExists。
func (r *ProfileRepository) Patch(id int, patch ProfilePatch) (int64, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return 0, err
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return 0, ErrNoFieldsToPatch
	}

	tx := r.db.Model(&model.Profile{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return 0, translateConstraintError(tx.Error)
	}
	return tx.RowsAffected, nil
}

// Delete 删除档案，返回受影响行数，仍有评分记录时由外键约束拒绝
func (r *ProfileRepository) Delete(id int) (int64, error) {
	tx := r.db.Delete(&model.Profile{}, id)
	if tx.Error != nil {
		return 0, translateConstraintError(tx.Error)
	}
	return tx.RowsAffected, nil
}
