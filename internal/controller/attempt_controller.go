package controller

import (
	"errors"
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"
	"quizdom_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// StartQuiz godoc
// @Summary 开始作答
// @Description 返回测验元信息与题目集合，不产生状态变更
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=service.StartQuizResponse} "成功"
// @Failure 403 {object} util.Response "该测验仅限作答一次"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{quizId}/start [get]
func (c *AttemptController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AttemptService.StartAttempt(util.MustParseUint(ctx.Param("quizId")), claims.UserID)
	if err != nil {
		c.writeAttemptError(ctx, err, false)
		return
	}

	util.Success(ctx, resp)
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	// QuestionAnswer 以题目ID字符串为键、所选答案为值
	QuestionAnswer map[string]string `json:"question_answer" binding:"required"`
}

// SubmitQuiz godoc
// @Summary 提交作答
// @Description 判分并永久记录成绩
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "测验ID"
// @Param   body body SubmitQuizRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 403 {object} util.Response "该测验仅限作答一次"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "测验没有题目"
// @Router /api/quizzes/{quizId}/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAttempt(util.MustParseUint(ctx.Param("quizId")), claims.UserID, req.QuestionAnswer)
	if err != nil {
		c.writeAttemptError(ctx, err, true)
		return
	}

	monitoring.AttemptCounter.WithLabelValues("accepted").Inc()
	util.Success(ctx, result)
}

// writeAttemptError 将作答流程的错误映射为响应状态；
// countDenied 仅在提交路径为 true，开卷被拒不计入提交指标。
func (c *AttemptController) writeAttemptError(ctx *gin.Context, err error, countDenied bool) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrChapterNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyAttempted):
		if countDenied {
			monitoring.AttemptCounter.WithLabelValues("denied").Inc()
		}
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrNoQuestions):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
