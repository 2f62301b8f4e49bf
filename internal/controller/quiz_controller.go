package controller

import (
	"bytes"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/service"
	"calibration_quiz/internal/util"
	"calibration_quiz/pkg/logger"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmitRequest documents the submission body.
// swagger:model SubmitRequest
type SubmitRequest struct {
	Questions []quiz.Question `json:"questions"`
	// lower_<i> / upper_<i>, number or numeric string
	Answers map[string]interface{} `json:"answers"`
}

// RecordFailedResponse is returned when a submission was scored but could not be stored.
type RecordFailedResponse struct {
	quiz.ScoredResult
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetQuestions godoc
// @Summary 随机抽取题目
// @Description Draws a fresh random sample of questions, answers included
// @Tags quiz
// @Produce json
// @Success 200 {array} quiz.Question
// @Failure 503 {object} util.Response "题库题目不足"
// @Router /questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.Questions(ctx.Request.Context())
	if errors.Is(err, quiz.ErrInsufficientBank) {
		logger.Log.Error("question bank too small", zap.Error(err))
		util.ErrorWithKind(ctx, http.StatusServiceUnavailable, quiz.Kind(err), err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// Submit godoc
// @Summary 提交答案并评分
// @Description Scores interval answers against the echoed questions. Authenticated submissions are stored.
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "questions and answer bounds"
// @Success 200 {object} service.SubmitResult
// @Failure 400 {object} util.Response "validation error"
// @Failure 500 {object} RecordFailedResponse "scored but not stored"
// @Router /submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	payload, err := decodePayload(ctx)
	if err != nil {
		util.ErrorWithKind(ctx, http.StatusBadRequest, quiz.Kind(err), err.Error())
		return
	}

	res, err := c.QuizService.Submit(ctx.Request.Context(), util.GetIdentity(ctx), payload)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, res)
	case quiz.IsValidationError(err):
		util.ErrorWithKind(ctx, http.StatusBadRequest, quiz.Kind(err), err.Error())
	case errors.Is(err, util.ErrRecordFailed) && res != nil:
		logger.Log.Error("submission scored but not recorded", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, RecordFailedResponse{
			ScoredResult: res.ScoredResult,
			Error:        "record_failed",
			Message:      util.ErrRecordFailed.Error(),
		})
	default:
		util.LogInternalError(ctx, err)
	}
}

// decodePayload reads the raw body. An empty body or JSON null is a missing
// payload; anything that is not a JSON object is a type mismatch.
func decodePayload(ctx *gin.Context) (quiz.Payload, error) {
	body, err := ctx.GetRawData()
	if err != nil {
		return nil, quiz.ErrMissingPayload
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, quiz.ErrMissingPayload
	}

	var payload quiz.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, quiz.ErrTypeMismatch
	}
	return payload, nil
}
