package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/middleware"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// NewViewRequest 创建评分请求体。
// Score 用指针区分「传了 0 分」和「没传」。
type NewViewRequest struct {
	MovieID int  `json:"movieId" binding:"required"`
	Score   *int `json:"score" binding:"required,gte=0,lte=10"`
}

// ViewScoreRequest 修改评分请求体
type ViewScoreRequest struct {
	Score *int `json:"score" binding:"required,gte=0,lte=10"`
}

// ListMyViews 当前档案的全部评分（内嵌电影）
func (h *Handler) ListMyViews(c *gin.Context) {
	views, err := h.Repos.View.ListByProfile(middleware.GetProfileID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, views)
}

// CreateView 给电影评分
func (h *Handler) CreateView(c *gin.Context) {
	var req NewViewRequest
	if !bindJSON(c, &req) {
		return
	}

	view := &model.View{
		ProfileID: middleware.GetProfileID(c),
		MovieID:   req.MovieID,
		Score:     *req.Score,
	}
	err := h.Repos.View.Create(view)
	if errors.Is(err, repository.ErrAlreadyExists) {
		utils.Conflict(c, "您已对该电影评过分")
		return
	}
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.NotFound(c, "电影不存在")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	h.refreshMovieStats(req.MovieID)
	utils.Created(c, "评分已创建", view)
}

// UpdateView 修改对某电影的评分
func (h *Handler) UpdateView(c *gin.Context) {
	movieID, ok := parseIDParam(c, "movieId")
	if !ok {
		return
	}
	var req ViewScoreRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.View.UpdateScore(middleware.GetProfileID(c), movieID, *req.Score)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "评分不存在")
		return
	}

	h.refreshMovieStats(movieID)
	utils.SuccessWithMessage(c, "评分已更新", nil)
}

// DeleteView 删除对某电影的评分
func (h *Handler) DeleteView(c *gin.Context) {
	movieID, ok := parseIDParam(c, "movieId")
	if !ok {
		return
	}

	rows, err := h.Repos.View.Delete(middleware.GetProfileID(c), movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "评分不存在")
		return
	}

	h.refreshMovieStats(movieID)
	utils.SuccessWithMessage(c, "评分已删除", nil)
}

// refreshMovieStats 评分变更后重算电影统计。
// 失败只记日志不影响本次请求，统计会在下一次评分变更时追平。
func (h *Handler) refreshMovieStats(movieID int) {
	rows, err := h.Repos.Movie.RecalculateStats(movieID)
	if err != nil {
		log.Printf("重算电影统计失败 movie_id=%d: %v", movieID, err)
		return
	}
	if rows == 0 {
		log.Printf("重算电影统计时电影不存在 movie_id=%d", movieID)
	}
}
