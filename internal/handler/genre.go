package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// NewGenreRequest 创建类型请求体
type NewGenreRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// GenrePatchRequest 类型 patch 请求体
type GenrePatchRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// ListGenres 类型列表
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.Repos.Genre.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, genres)
}

// GetGenre 类型详情
func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := h.Repos.Genre.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "类型不存在")
		return
	}
	utils.Success(c, genre)
}

// CreateGenre 创建类型
func (h *Handler) CreateGenre(c *gin.Context) {
	var req NewGenreRequest
	if !bindJSON(c, &req) {
		return
	}

	genre := &model.Genre{Name: req.Name}
	if err := h.Repos.Genre.Create(genre); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "类型已创建", genre)
}

// PatchGenre 修改类型
func (h *Handler) PatchGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GenrePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.Genre.Patch(id, repository.GenrePatch{Name: req.Name})
	if errors.Is(err, repository.ErrNoFieldsToPatch) {
		utils.BadRequest(c, "没有可更新的字段")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "类型不存在")
		return
	}
	utils.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteGenre 删除类型
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.Repos.Genre.Delete(id)
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.Conflict(c, "类型仍被电影引用，无法删除")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "类型不存在")
		return
	}
	utils.SuccessWithMessage(c, "类型已删除", nil)
}

// ListGenreMovies 某类型下的电影列表
func (h *Handler) ListGenreMovies(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	movies, err := h.Repos.MovieGenre.ListMoviesByGenre(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}
