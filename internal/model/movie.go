package model

// Movie 电影模型
// viewCount 和 scoreAverage 是派生字段，只能通过评分重算更新，不接受客户端直接写入
type Movie struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description" gorm:"not null"`
	ImageURL     *string `json:"imageUrl,omitempty" gorm:"column:image_url"`
	ViewCount    int     `json:"viewCount" gorm:"not null;default:0"`
	ScoreAverage float64 `json:"scoreAverage" gorm:"type:numeric(5,2);not null;default:0"`
}
