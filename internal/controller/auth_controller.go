package controller

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/service"
	"calibration_quiz/internal/util"
	"calibration_quiz/pkg/logger"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthService *service.AuthService
	Session     config.SessionConfig
}

func NewAuthController(authService *service.AuthService, session config.SessionConfig) *AuthController {
	return &AuthController{
		AuthService: authService,
		Session:     session,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username       string                 `json:"username" binding:"required,max=100"`
	Password       string                 `json:"password" binding:"required"`
	Email          string                 `json:"email" binding:"required,email"`
	FirstName      *string                `json:"first_name"`
	LastName       *string                `json:"last_name"`
	DateOfBirth    *string                `json:"date_of_birth"`
	ProfilePicture *string                `json:"profile_picture"`
	Preferences    map[string]interface{} `json:"preferences"`
}

// TokenRequest accepts OAuth2 password-form fields or the same keys as JSON.
// swagger:model TokenRequest
type TokenRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register godoc
// @Summary 注册新用户
// @Description Creates an account. Username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名或邮箱已被注册"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	in := service.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
		Preferences:    req.Preferences,
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse(util.DateFormat, *req.DateOfBirth)
		if err != nil {
			util.BadRequest(ctx, "date_of_birth must be YYYY-MM-DD")
			return
		}
		in.DateOfBirth = &dob
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), in)
	switch {
	case errors.Is(err, util.ErrUsernameTaken), errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// Token godoc
// @Summary 登录
// @Description Checks credentials, opens a session cookie and returns a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string true "username"
// @Param password formData string true "password"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Username, req.Password)
	if errors.Is(err, util.ErrInvalidCredentials) {
		ctx.Header("WWW-Authenticate", "Bearer")
		util.Error(ctx, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, res.SessionID, int(c.Session.MaxAge.Seconds()))
	logger.Log.Info("user logged in", zap.String("username", req.Username))
	ctx.JSON(http.StatusOK, res)
}

// Logout godoc
// @Summary 退出登录
// @Tags auth
// @Success 302
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.endSession(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

// CheckAuth godoc
// @Summary 当前登录状态
// @Tags auth
// @Produce json
// @Success 200 {object} util.Identity
// @Router /check-auth [get]
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, util.GetIdentity(ctx))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Session.CookieName, value, maxAge, "/", "", c.Session.Secure, true)
}

// endSession drops the server-side session and expires the cookie.
func (c *AuthController) endSession(ctx *gin.Context) {
	if sessionID := ctx.GetString(util.ContextSessionID); sessionID != "" {
		if err := c.AuthService.Logout(ctx.Request.Context(), sessionID); err != nil {
			logger.Log.Warn("failed to drop session", zap.Error(err))
		}
	}
	c.setSessionCookie(ctx, "", -1)
}
