package repository

import (
	"fmt"

	"github.com/user/streamify/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// Migrate 建表，唯一索引和外键约束由模型标签声明。
// 外键默认 NO ACTION：仍被关联引用的记录不允许删除，由存储层拒绝。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Movie{},
		&model.Genre{},
		&model.StaffMember{},
		&model.Profile{},
		&model.View{},
		&model.MovieGenre{},
		&model.MovieStaff{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB         *gorm.DB
	Movie      *MovieRepository
	Genre      *GenreRepository
	Staff      *StaffMemberRepository
	Profile    *ProfileRepository
	View       *ViewRepository
	MovieGenre *MovieGenreRepository
	MovieStaff *MovieStaffRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Movie:      NewMovieRepository(db),
		Genre:      NewGenreRepository(db),
		Staff:      NewStaffMemberRepository(db),
		Profile:    NewProfileRepository(db),
		View:       NewViewRepository(db),
		MovieGenre: NewMovieGenreRepository(db),
		MovieStaff: NewMovieStaffRepository(db),
	}
}
