package model

// StaffMember 演职人员
type StaffMember struct {
	ID       int    `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	LastName string `json:"lastName" gorm:"not null"`
}

// MovieStaff 电影-演职人员关联，关联本身带角色属性
// (movie_id, staff_member_id) 唯一，role_name 可单独修改
type MovieStaff struct {
	ID            int    `json:"id" gorm:"primaryKey"`
	MovieID       int    `json:"movieId" gorm:"not null;uniqueIndex:idx_movie_staff_pair"`
	StaffMemberID int    `json:"staffMemberId" gorm:"not null;uniqueIndex:idx_movie_staff_pair"`
	RoleName      string `json:"roleName" gorm:"not null"`

	Movie  *Movie       `json:"-" gorm:"foreignKey:MovieID"`
	Member *StaffMember `json:"-" gorm:"foreignKey:StaffMemberID"`
}

// TableName 覆盖默认表名
func (MovieStaff) TableName() string {
	return "movie_staff"
}

// MovieStaffAggregated 按电影查询演职人员时的读侧 DTO，内嵌人员信息
type MovieStaffAggregated struct {
	ID       int          `json:"id"`
	RoleName string       `json:"roleName"`
	Member   *StaffMember `json:"member,omitempty"`
}

// StaffMovieAggregated 按人员查询参演电影时的读侧 DTO，内嵌电影信息
type StaffMovieAggregated struct {
	ID       int    `json:"id"`
	RoleName string `json:"roleName"`
	Movie    *Movie `json:"movie,omitempty"`
}
