package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/user/streamify/internal/config"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"golang.org/x/sync/errgroup"
)

// 演示数据填充工具：建表后写入一批电影、类型、人员和评分，
// 最后逐片重算统计字段。重复执行会因唯一约束报错，请在空库上运行。
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}
	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	repos := repository.NewRepositories(db)

	genres := []*model.Genre{
		{Name: "科幻"},
		{Name: "剧情"},
		{Name: "动作"},
	}
	staff := []*model.StaffMember{
		{Name: "克里斯托弗", LastName: "诺兰"},
		{Name: "莱昂纳多", LastName: "迪卡普里奥"},
		{Name: "马修", LastName: "麦康纳"},
	}
	movies := []*model.Movie{
		{Name: "盗梦空间", Description: "造梦师在多层梦境中植入想法。"},
		{Name: "星际穿越", Description: "穿越虫洞为人类寻找新家园。"},
		{Name: "信条", Description: "利用时间逆转阻止世界毁灭。"},
	}

	// 三类基础数据互不依赖，并发写入
	var g errgroup.Group
	g.Go(func() error {
		for _, genre := range genres {
			if err := repos.Genre.Create(genre); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, member := range staff {
			if err := repos.Staff.Create(member); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, movie := range movies {
			if err := repos.Movie.Create(movie); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("基础数据写入失败: %v", err)
	}

	// 关联依赖上面生成的 ID，串行写入
	links := []struct {
		movie, genre int
	}{
		{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 2},
	}
	for _, l := range links {
		if err := repos.MovieGenre.CreateLink(movies[l.movie].ID, genres[l.genre].ID); err != nil {
			log.Fatalf("电影-类型关联写入失败: %v", err)
		}
	}

	credits := []struct {
		movie, member int
		role          string
	}{
		{0, 0, "导演"},
		{0, 1, "主演"},
		{1, 0, "导演"},
		{1, 2, "主演"},
		{2, 0, "导演"},
	}
	for _, cr := range credits {
		if err := repos.MovieStaff.CreateLink(movies[cr.movie].ID, staff[cr.member].ID, cr.role); err != nil {
			log.Fatalf("电影-人员关联写入失败: %v", err)
		}
	}

	// 两个演示档案，其中一个在默认管理员名单内
	admin, err := repos.Profile.Create("Admin", "User", "admin.user@streamify.com", "changeme123")
	if err != nil {
		log.Fatalf("管理员档案写入失败: %v", err)
	}
	viewer, err := repos.Profile.Create("Demo", "Viewer", "demo.viewer@streamify.com", "changeme123")
	if err != nil {
		log.Fatalf("普通档案写入失败: %v", err)
	}

	views := []*model.View{
		{ProfileID: admin.ID, MovieID: movies[0].ID, Score: 9},
		{ProfileID: admin.ID, MovieID: movies[1].ID, Score: 10},
		{ProfileID: viewer.ID, MovieID: movies[0].ID, Score: 8},
		{ProfileID: viewer.ID, MovieID: movies[2].ID, Score: 7},
	}
	for _, v := range views {
		if err := repos.View.Create(v); err != nil {
			log.Fatalf("评分写入失败: %v", err)
		}
	}

	// 评分就绪后重算每部电影的统计字段
	var stats errgroup.Group
	for _, movie := range movies {
		movieID := movie.ID
		stats.Go(func() error {
			_, err := repos.Movie.RecalculateStats(movieID)
			return err
		})
	}
	if err := stats.Wait(); err != nil {
		log.Fatalf("统计重算失败: %v", err)
	}

	log.Printf("填充完成：%d 部电影，%d 个类型，%d 位人员，%d 条评分", len(movies), len(genres), len(staff), len(views))
}
