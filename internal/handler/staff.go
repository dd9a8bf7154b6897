package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/model"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// NewStaffMemberRequest 创建演职人员请求体
type NewStaffMemberRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	LastName string `json:"lastName" binding:"required,max=100"`
}

// StaffMemberPatchRequest 演职人员 patch 请求体
type StaffMemberPatchRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	LastName *string `json:"lastName" binding:"omitempty,max=100"`
}

// ListStaffMembers 演职人员列表
func (h *Handler) ListStaffMembers(c *gin.Context) {
	members, err := h.Repos.Staff.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, members)
}

// GetStaffMember 演职人员详情
func (h *Handler) GetStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.Repos.Staff.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if member == nil {
		utils.NotFound(c, "演职人员不存在")
		return
	}
	utils.Success(c, member)
}

// CreateStaffMember 创建演职人员
func (h *Handler) CreateStaffMember(c *gin.Context) {
	var req NewStaffMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member := &model.StaffMember{Name: req.Name, LastName: req.LastName}
	if err := h.Repos.Staff.Create(member); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "演职人员已创建", member)
}

// PatchStaffMember 修改演职人员
func (h *Handler) PatchStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StaffMemberPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.Repos.Staff.Patch(id, repository.StaffMemberPatch{
		Name:     req.Name,
		LastName: req.LastName,
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
		utils.NotFound(c, "演职人员不存在")
		return
	}
	utils.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteStaffMember 删除演职人员
func (h *Handler) DeleteStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.Repos.Staff.Delete(id)
	if errors.Is(err, repository.ErrRelatedMissing) {
		utils.Conflict(c, "该人员仍被电影引用，无法删除")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rows == 0 {
		utils.NotFound(c, "演职人员不存在")
		return
	}
	utils.SuccessWithMessage(c, "演职人员已删除", nil)
}

// ListStaffMovies 某人员参与的电影列表
func (h *Handler) ListStaffMovies(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	movies, err := h.Repos.MovieStaff.ListMoviesByStaff(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// PatchStaffMovieRole 修改角色名（从人员侧发起）
func (h *Handler) PatchStaffMovieRole(c *gin.Context) {
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

	rows, err := h.Repos.MovieStaff.UpdateRoleByStaff(linkID, id, req.RoleName)
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

// RemoveStaffMovie 移除人员的某个电影关联
func (h *Handler) RemoveStaffMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	linkID, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	rows, err := h.Repos.MovieStaff.DeleteByStaff(linkID, id)
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
