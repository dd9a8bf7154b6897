package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// NewMovieRequest 创建电影请求体
type NewMovieRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

// MoviePatchRequest 电影 patch 请求体，缺省字段表示不修改。
// 派生字段不可直接修改，不在载荷内。
type MoviePatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

// NewMovieGenreRequest 电影-类型关联请求体
type NewMovieGenreRequest struct {
	GenreID int `json:"genreId" binding:"required"`
}

// NewMovieStaffRequest 电影-人员关联请求体
type NewMovieStaffRequest struct {
	StaffMemberID int    `json:"staffMemberId" binding:"required"`
	RoleName      string `json:"roleName" binding:"required,max=100"`
}

// RoleNameRequest 角色名修改请求体
type RoleNameRequest struct {
	RoleName string `json:"roleName" binding:"required,max=100"`
}

// ListMovies 电影列表
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Repos.Movie.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, movie)
}

// CreateMovie 创建电影，派生字段强制清零
func (h *Handler) CreateMovie(c *gin.Context) {
	var req NewMovieRequest
	if !bindJSON(c, &req) {
		return
	}

	movie := &model.Movie{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		ViewCount:    0,
		ScoreAverage: 0,
	}
	if err := h.Repos.Movie.Create(movie); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "电影已创建", movie)
}

// PatchMovie 修改电影，只更新提供的字段
func (h *Handler) PatchMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req MoviePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.Movie.Patch(id, repository.MoviePatch{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if errors.Is(err, repository.ErrNoFieldsToPatch) {
		utils.BadRequest(c, "没有可更新的字段")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteMovie 删除电影
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.Repos.Movie.Delete(id)
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.Conflict(c, "电影仍有关联数据，无法删除")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.SuccessWithMessage(c, "电影已删除", nil)
}

// ListMovieGenres 某电影的类型列表
func (h *Handler) ListMovieGenres(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genres, err := h.Repos.MovieGenre.ListGenresByMovie(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, genres)
}

// AddMovieGenre 给电影添加类型
func (h *Handler) AddMovieGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NewMovieGenreRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.Repos.MovieGenre.CreateLink(id, req.GenreID)
	if errors.Is(err, repository.ErrAlreadyExists) {
		utils.Conflict(c, "关联已存在")
		return
	}
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.NotFound(c, "电影或类型不存在")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "关联已创建", nil)
}

// RemoveMovieGenre 移除电影的某个类型
func (h *Handler) RemoveMovieGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	genreID, ok := parseIDParam(c, "genreId")
	if !ok {
		return
	}

	rows, err := h.Repos.MovieGenre.DeleteLink(id, genreID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "关联不存在")
		return
	}
	utils.SuccessWithMessage(c, "关联已删除", nil)
}

// ListMovieStaff 某电影的演职人员列表
func (h *Handler) ListMovieStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	movieStaff, err := h.Repos.MovieStaff.ListStaffByMovie(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movieStaff)
}

// AddMovieStaff 给电影添加演职人员
func (h *Handler) AddMovieStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NewMovieStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.Repos.MovieStaff.CreateLink(id, req.StaffMemberID, req.RoleName)
	if errors.Is(err, repository.ErrAlreadyExists) {
		utils.Conflict(c, "该人员已关联此电影")
		return
	}
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.NotFound(c, "电影或人员不存在")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "关联已创建", nil)
}

// PatchMovieStaffRole 修改角色名（从电影侧发起）
func (h *Handler) PatchMovieStaffRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	linkID, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}
	var req RoleNameRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.MovieStaff.UpdateRoleByMovie(linkID, id, req.RoleName)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "关联不存在")
		return
	}
	utils.SuccessWithMessage(c, "更新成功", nil)
}

// RemoveMovieStaff 移除电影的某个演职人员关联
func (h *Handler) RemoveMovieStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	linkID, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	rows, err := h.Repos.MovieStaff.DeleteByMovie(linkID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "关联不存在")
		return
	}
	utils.SuccessWithMessage(c, "关联已删除", nil)
}
