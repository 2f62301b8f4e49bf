package controller

import (
	"calibration_quiz/internal/service"
	"calibration_quiz/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

// GetHistory godoc
// @Summary 成绩历史
// @Description Score records of the current user, newest first
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.ScoreRecord
// @Failure 401 {object} util.Response
// @Router /api/score-history [get]
func (c *ScoreController) GetHistory(ctx *gin.Context) {
	records, err := c.ScoreService.History(ctx.Request.Context(), util.GetIdentity(ctx))
	if errors.Is(err, util.ErrUnauthorized) {
		util.Unauthorized(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}
