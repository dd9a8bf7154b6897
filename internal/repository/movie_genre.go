package repository

import (
	"github.com/user/streamify/internal/model"
	"gorm.io/gorm"
)

type MovieGenreRepository struct {
	db *gorm.DB
}

func NewMovieGenreRepository(db *gorm.DB) *MovieGenreRepository {
	return &MovieGenreRepository{db: db}
}

// ListGenresByMovie 查询某电影的全部类型
func (r *MovieGenreRepository) ListGenresByMovie(movieID int) ([]*model.Genre, error) {
	rows, err := r.db.Raw(`
		SELECT g.id, g.name
		FROM movie_genre mg
		INNER JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ?
	`, movieID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]*model.Genre, 0)
	for rows.Next() {
		var row genreRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, err
		}
		genres = append(genres, mapGenreRow(row))
	}
	return genres, rows.Err()
}

// ListMoviesByGenre 查询某类型下的全部电影
func (r *MovieGenreRepository) ListMoviesByGenre(genreID int) ([]*model.Movie, error) {
	rows, err := r.db.Raw(`
		SELECT m.id, m.name, m.description, m.image_url, m.view_count, m.score_average
		FROM movie_genre mg
		INNER JOIN movies m ON m.id = mg.movie_id
		WHERE mg.genre_id = ?
	`, genreID).Rows()
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

// CreateLink 建立电影-类型关联。
// 关联已存在时返回 ErrAlreadyExists，电影或类型不存在时返回 ErrRelatedMissing。
func (r *MovieGenreRepository) CreateLink(movieID, genreID int) error {
	link := &model.MovieGenre{MovieID: movieID, GenreID: genreID}
	if err := r.db.Create(link).Error; err != nil {
		return translateConstraintError(err)
	}
	return nil
}

// DeleteLink 按完整自然键删除关联，返回受影响行数
func (r *MovieGenreRepository) DeleteLink(movieID, genreID int) (int64, error) {
	tx := r.db.Where("movie_id = ? AND genre_id = ?", movieID, genreID).
		Delete(&model.MovieGenre{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
