package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/middleware"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// 登录限流：同一来源 IP 在窗口内连续失败超过上限后暂时拒绝
const (
	loginFailureLimit  = 5
	loginFailureWindow = 10 * time.Minute
)

// RegisterRequest 注册请求体
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	LastName string `json:"lastName" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfilePatchRequest 档案 patch 请求体，缺省字段表示不修改
type ProfilePatchRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	LastName *string `json:"lastName" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// Register 注册新档案
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.Repos.Profile.Create(req.Name, req.LastName, req.Email, req.Password)
	if errors.Is(err, repository.ErrAlreadyExists) {
		utils.Conflict(c, "该邮箱已被注册")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "注册成功", nil)
}

// Login 登录并签发 JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	// 登录限流
	throttleKey := "login:" + utils.HashIP(c.ClientIP())
	if v, ok := utils.CacheGet(throttleKey); ok && v.(int) >= loginFailureLimit {
		utils.Error(c, 429, "失败次数过多，请稍后再试")
		return
	}

	// 查找档案并验证密码
	profile, err := h.Repos.Profile.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if profile == nil || !h.Repos.Profile.CheckPassword(profile, req.Password) {
		utils.CountFailure(throttleKey, loginFailureWindow)
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 角色由管理员名单决定
	role := middleware.RoleRegular
	if h.Config.IsAdminEmail(profile.Email) {
		role = middleware.RoleAdministrator
	}

	token, err := middleware.GenerateToken(profile.ID, profile.Email, role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	// 同时写入 Cookie，方便浏览器直接携带
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.Success(c, gin.H{"accessToken": token})
}

// Me 返回当前登录档案（不含密码）
func (h *Handler) Me(c *gin.Context) {
	profile, err := h.Repos.Profile.FindByID(middleware.GetProfileID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if profile == nil {
		// 令牌有效但档案已被删除
		utils.Unauthorized(c, "档案不存在")
		return
	}

	utils.Success(c, model.AuthProfile{
		ID:       profile.ID,
		Name:     profile.Name,
		LastName: profile.LastName,
		Email:    profile.Email,
		Role:     middleware.GetRole(c),
	})
}

// UpdateMe 修改当前档案，只更新提供的字段
func (h *Handler) UpdateMe(c *gin.Context) {
	var req ProfilePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.Profile.Patch(middleware.GetProfileID(c), repository.ProfilePatch{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, repository.ErrNoFieldsToPatch) {
		utils.BadRequest(c, "没有可更新的字段")
		return
	}
	if errors.Is(err, repository.ErrAlreadyExists) {
		utils.Conflict(c, "该邮箱已被占用")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "档案不存在")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteMe 删除当前档案
func (h *Handler) DeleteMe(c *gin.Context) {
	rows, err := h.Repos.Profile.Delete(middleware.GetProfileID(c))
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.Conflict(c, "仍有评分记录，请先删除")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "档案不存在")
		return
	}

	// 清除 Cookie
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "档案已删除", nil)
}
