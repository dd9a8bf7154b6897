package repository

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamify/internal/model"
)

// 集成测试需要真实的 PostgreSQL，通过 TEST_DATABASE_URL 指定，
// 未设置时跳过。每个测试开始前清空全部表。
func testRepos(t *testing.T) *Repositories {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("未设置 TEST_DATABASE_URL，跳过集成测试")
	}

	db, err := InitDB(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	// 按外键依赖顺序清空
	for _, table := range []string{"views", "movie_genre", "movie_staff", "movies", "genres", "staff_members", "profiles"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return NewRepositories(db)
}

func seedMovie(t *testing.T, repos *Repositories, name string) *model.Movie {
	t.Helper()
	movie := &model.Movie{Name: name, Description: "测试电影"}
	require.NoError(t, repos.Movie.Create(movie))
	return movie
}

func seedProfile(t *testing.T, repos *Repositories, email string) *model.Profile {
	t.Helper()
	profile, err := repos.Profile.Create("测试", "用户", email, "password123")
	require.NoError(t, err)
	return profile
}

func TestMovieStats_FollowViewLifecycle(t *testing.T) {
	repos := testRepos(t)
	movie := seedMovie(t, repos, "统计测试")
	alice := seedProfile(t, repos, "alice@example.com")
	bob := seedProfile(t, repos, "bob@example.com")

	recalc := func() *model.Movie {
		rows, err := repos.Movie.RecalculateStats(movie.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)
		got, err := repos.Movie.FindByID(movie.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		return got
	}

	// 第一条评分 4 分
	require.NoError(t, repos.View.Create(&model.View{ProfileID: alice.ID, MovieID: movie.ID, Score: 4}))
	got := recalc()
	assert.Equal(t, 1, got.ViewCount)
	assert.InDelta(t, 4.0, got.ScoreAverage, 0.001)

	// 第二条评分 2 分，平均 3.0
	require.NoError(t, repos.View.Create(&model.View{ProfileID: bob.ID, MovieID: movie.ID, Score: 2}))
	got = recalc()
	assert.Equal(t, 2, got.ViewCount)
	assert.InDelta(t, 3.0, got.ScoreAverage, 0.001)

	// 改成 3 分，平均 3.5
	rows, err := repos.View.UpdateScore(bob.ID, movie.ID, 3)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
	_, err = repos.View.UpdateScore(alice.ID, movie.ID, 4)
	require.NoError(t, err)
	got = recalc()
	assert.InDelta(t, 3.5, got.ScoreAverage, 0.001)

	// 删掉一条后只剩 4 分
	rows, err = repos.View.Delete(bob.ID, movie.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
	got = recalc()
	assert.Equal(t, 1, got.ViewCount)
	assert.InDelta(t, 4.0, got.ScoreAverage, 0.001)

	// 全删后归零
	rows, err = repos.View.Delete(alice.ID, movie.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
	got = recalc()
	assert.Equal(t, 0, got.ViewCount)
	assert.InDelta(t, 0.0, got.ScoreAverage, 0.001)
}

func TestViewCreate_Constraints(t *testing.T) {
	repos := testRepos(t)
	movie := seedMovie(t, repos, "约束测试")
	alice := seedProfile(t, repos, "alice@example.com")

	require.NoError(t, repos.View.Create(&model.View{ProfileID: alice.ID, MovieID: movie.ID, Score: 8}))

	// 同一档案对同一电影重复评分
	err := repos.View.Create(&model.View{ProfileID: alice.ID, MovieID: movie.ID, Score: 5})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// 引用不存在的电影
	err = repos.View.Create(&model.View{ProfileID: alice.ID, MovieID: movie.ID + 9999, Score: 5})
	assert.ErrorIs(t, err, ErrRelatedMissing)
}

func TestMovieGenreLink_Constraints(t *testing.T) {
	repos := testRepos(t)
	movie := seedMovie(t, repos, "关联测试")
	genre := &model.Genre{Name: "科幻"}
	require.NoError(t, repos.Genre.Create(genre))

	require.NoError(t, repos.MovieGenre.CreateLink(movie.ID, genre.ID))
	assert.ErrorIs(t, repos.MovieGenre.CreateLink(movie.ID, genre.ID), ErrAlreadyExists)
	assert.ErrorIs(t, repos.MovieGenre.CreateLink(movie.ID, genre.ID+9999), ErrRelatedMissing)

	// 仍被引用的类型不允许删除
	_, err := repos.Genre.Delete(genre.ID)
	assert.ErrorIs(t, err, ErrRelatedMissing)

	// 解除关联后才可删除
	rows, err := repos.MovieGenre.DeleteLink(movie.ID, genre.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
	rows, err = repos.Genre.Delete(genre.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)
}

func TestMoviePatch_Selective(t *testing.T) {
	repos := testRepos(t)
	movie := seedMovie(t, repos, "原名")

	// 只改名字，描述保持不变
	name := "新名"
	rows, err := repos.Movie.Patch(movie.ID, MoviePatch{Name: &name})
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	got, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "新名", got.Name)
	assert.Equal(t, "测试电影", got.Description)

	// 空载荷
	_, err = repos.Movie.Patch(movie.ID, MoviePatch{})
	assert.ErrorIs(t, err, ErrNoFieldsToPatch)

	// 不存在的 ID
	rows, err = repos.Movie.Patch(movie.ID+9999, MoviePatch{Name: &name})
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestProfile_EmailUniqueAndPassword(t *testing.T) {
	repos := testRepos(t)
	alice := seedProfile(t, repos, "alice@example.com")

	_, err := repos.Profile.Create("另一个", "用户", "alice@example.com", "password456")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	assert.True(t, repos.Profile.CheckPassword(alice, "password123"))
	assert.False(t, repos.Profile.CheckPassword(alice, "wrong"))

	// 不存在的邮箱返回 (nil, nil)
	missing, err := repos.Profile.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestViewList_EmbedsMovie(t *testing.T) {
	repos := testRepos(t)
	movie := seedMovie(t, repos, "内嵌测试")
	alice := seedProfile(t, repos, "alice@example.com")
	require.NoError(t, repos.View.Create(&model.View{ProfileID: alice.ID, MovieID: movie.ID, Score: 7}))

	views, err := repos.View.ListByProfile(alice.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 7, views[0].Score)
	require.NotNil(t, views[0].Movie)
	assert.Equal(t, movie.ID, views[0].Movie.ID)
	assert.Equal(t, "内嵌测试", views[0].Movie.Name)
}

func TestMovieStaff_ScopedRoleUpdate(t *testing.T) {
	repos := testRepos(t)
	movieA := seedMovie(t, repos, "电影A")
	movieB := seedMovie(t, repos, "电影B")
	member := &model.StaffMember{Name: "某", LastName: "导演"}
	require.NoError(t, repos.Staff.Create(member))

	require.NoError(t, repos.MovieStaff.CreateLink(movieA.ID, member.ID, "导演"))
	links, err := repos.MovieStaff.ListStaffByMovie(movieA.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	linkID := links[0].ID

	// 用错误的电影 ID 限定时改不到
	rows, err := repos.MovieStaff.UpdateRoleByMovie(linkID, movieB.ID, "编剧")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	// 正确限定时生效
	rows, err = repos.MovieStaff.UpdateRoleByMovie(linkID, movieA.ID, "编剧")
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	links, err = repos.MovieStaff.ListStaffByMovie(movieA.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "编剧", links[0].RoleName)
	require.NotNil(t, links[0].Member)
	assert.Equal(t, "导演", links[0].Member.LastName)
}
