package controller

import (
	"calibration_quiz/internal/service"
	"calibration_quiz/internal/util"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Auth        *AuthController
}

func NewUserController(userService *service.UserService, auth *AuthController) *UserController {
	return &UserController{UserService: userService, Auth: auth}
}

// GetProfile godoc
// @Summary 获取个人资料
// @Description Current user with score history
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.UserService.Profile(ctx.Request.Context(), util.GetIdentity(ctx))
	if errors.Is(err, util.ErrUnauthorized) || errors.Is(err, util.ErrUserNotFound) {
		util.Unauthorized(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeleteProfile godoc
// @Summary 删除账户
// @Description Deletes the current user and all of its score records, then ends the session
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /profile [delete]
func (c *UserController) DeleteProfile(ctx *gin.Context) {
	err := c.UserService.DeleteAccount(ctx.Request.Context(), util.GetIdentity(ctx))
	switch {
	case errors.Is(err, util.ErrUnauthorized):
		util.Unauthorized(ctx)
		return
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}

	c.Auth.endSession(ctx)
	util.Success(ctx, gin.H{"message": "Profile deleted successfully"})
}

// UserExists godoc
// @Summary 用户名是否存在
// @Tags user
// @Produce json
// @Param username query string true "username"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/users/exists [get]
func (c *UserController) UserExists(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Query("username"))
	if username == "" {
		util.BadRequest(ctx, "username is required")
		return
	}
	exists, err := c.UserService.Exists(ctx.Request.Context(), username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"exists": exists})
}

