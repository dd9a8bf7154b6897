package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/streamify/internal/config"
	"github.com/user/streamify/internal/repository"
	"github.com/user/streamify/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
	}
}

// bindJSON 绑定并校验请求体，失败时写入 400 响应并返回 false
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		utils.BadRequest(c, validationMessage(err))
		return false
	}
	return true
}

// validationMessage 把校验错误转成对用户友好的提示
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("字段 %s 校验失败（%s）", fe.Field(), fe.Tag())
	}
	return "请求参数格式错误"
}

// parseIDParam 解析路径中的数字 ID，非法时写入 400 响应并返回 false
func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "ID 必须是正整数")
		return 0, false
	}
	return id, true
}
