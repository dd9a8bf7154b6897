package model

// Genre 电影类型
type Genre struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// MovieGenre 电影-类型关联（复合主键保证同一对只出现一次）
type MovieGenre struct {
	MovieID int `json:"movieId" gorm:"primaryKey;autoIncrement:false"`
	GenreID int `json:"genreId" gorm:"primaryKey;autoIncrement:false"`

	Movie *Movie `json:"-" gorm:"foreignKey:MovieID"`
	Genre *Genre `json:"-" gorm:"foreignKey:GenreID"`
}

// TableName 覆盖默认表名
func (MovieGenre) TableName() string {
	return "movie_genre"
}
