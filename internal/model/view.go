package model

// View 观影评分：一个档案对一部电影至多一条
type View struct {
	ID        int `json:"id" gorm:"primaryKey"`
	Score     int `json:"score" gorm:"not null"`
	ProfileID int `json:"profileId" gorm:"not null;uniqueIndex:idx_views_profile_movie"`
	MovieID   int `json:"movieId" gorm:"not null;uniqueIndex:idx_views_profile_movie"`

	Profile *Profile `json:"-" gorm:"foreignKey:ProfileID"`
	Movie   *Movie   `json:"-" gorm:"foreignKey:MovieID"`
}

// ViewAggregated 评分及其关联的电影（读侧 DTO）
// Movie 仅在查询联表时填充，未联表则整个字段省略
type ViewAggregated struct {
	ID    int    `json:"id"`
	Score int    `json:"score"`
	Movie *Movie `json:"movie,omitempty"`
}
