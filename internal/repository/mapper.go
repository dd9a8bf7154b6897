package repository

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/user/streamify/internal/model"
)

// dbNumeric 吸收 numeric 列的各种驱动表示（float64、文本、NULL），
// 也处理 json_agg 输出里把 numeric 序列化成字符串的情况。
// 解析不出来时按 0 处理。
type dbNumeric float64

func (n *dbNumeric) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*n = 0
	case float64:
		*n = dbNumeric(v)
	case int64:
		*n = dbNumeric(v)
	case []byte:
		*n = parseNumeric(string(v))
	case string:
		*n = parseNumeric(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 numeric", src)
	}
	return nil
}

func (n *dbNumeric) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = parseNumeric(s)
	return nil
}

func parseNumeric(s string) dbNumeric {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return dbNumeric(f)
}

// 行结构体：既是 rows.Scan 的目标，也是 json_agg 内嵌对象的解码目标，
// json 标签与列名一致（snake_case）。

type movieRow struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     *string   `json:"image_url"`
	ViewCount    int       `json:"view_count"`
	ScoreAverage dbNumeric `json:"score_average"`
}

type genreRow struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type staffMemberRow struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

type profileRow struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// viewRow 评分行，Movie 列是 json_agg 聚合出的 JSON 数组原文
type viewRow struct {
	ID        int
	Score     int
	ProfileID int
	MovieID   int
	Movie     []byte
}

// movieStaffRow 电影-人员关联行，Member / Movie 按查询方向只填其一
type movieStaffRow struct {
	ID       int
	RoleName string
	Member   []byte
	Movie    []byte
}

func mapMovieRow(row movieRow) *model.Movie {
	return &model.Movie{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		ImageURL:     row.ImageURL,
		ViewCount:    row.ViewCount,
		ScoreAverage: float64(row.ScoreAverage),
	}
}

func mapGenreRow(row genreRow) *model.Genre {
	return &model.Genre{ID: row.ID, Name: row.Name}
}

func mapStaffMemberRow(row staffMemberRow) *model.StaffMember {
	return &model.StaffMember{ID: row.ID, Name: row.Name, LastName: row.LastName}
}

func mapProfileRow(row profileRow) *model.Profile {
	return &model.Profile{
		ID:       row.ID,
		Name:     row.Name,
		LastName: row.LastName,
		Email:    row.Email,
		Password: row.Password,
	}
}

// firstEmbedded 解码 json_agg 产出的数组并取第一个元素。
// 列为 NULL、数组为空或解析失败时返回 (零值, false)，
// 调用方据此省略内嵌字段而不是返回半成品。
func firstEmbedded[T any](data []byte) (T, bool) {
	var zero T
	if len(data) == 0 {
		return zero, false
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return zero, false
	}
	return items[0], true
}

func mapViewAggregatedRow(row viewRow) *model.ViewAggregated {
	view := &model.ViewAggregated{ID: row.ID, Score: row.Score}
	if movie, ok := firstEmbedded[movieRow](row.Movie); ok {
		view.Movie = mapMovieRow(movie)
	}
	return view
}

func mapMovieStaffRow(row movieStaffRow) *model.MovieStaffAggregated {
	link := &model.MovieStaffAggregated{ID: row.ID, RoleName: row.RoleName}
	if member, ok := firstEmbedded[staffMemberRow](row.Member); ok {
		link.Member = mapStaffMemberRow(member)
	}
	return link
}

func mapStaffMovieRow(row movieStaffRow) *model.StaffMovieAggregated {
	link := &model.StaffMovieAggregated{ID: row.ID, RoleName: row.RoleName}
	if movie, ok := firstEmbedded[movieRow](row.Movie); ok {
		link.Movie = mapMovieRow(movie)
	}
	return link
}
