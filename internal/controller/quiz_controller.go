package controller

import (
	"errors"
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// ListQuizzes godoc
// @Summary 用户侧测验列表
// @Description 已启用的测验，附带作答次数与当前用户是否已作答
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.QuizSummary} "成功"
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summaries, err := c.QuizService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// swagger:model QuizRequest
type QuizRequest struct {
	Name          string `json:"quiz_name" binding:"required"`
	Description   string `json:"quiz_description" binding:"required"`
	ChapterID     uint   `json:"chapter_id" binding:"required"`
	IsActive      *bool  `json:"quiz_is_active"`
	ReleaseDate   string `json:"quiz_release_date" binding:"required"`
	Duration      string `json:"quiz_duration" binding:"required"`
	SingleAttempt bool   `json:"single_attempt"`
}

func (r *QuizRequest) toParams() (service.QuizParams, error) {
	releaseDate, err := time.Parse("2006-01-02", r.ReleaseDate)
	if err != nil {
		return service.QuizParams{}, errors.New("quiz_release_date must be formatted as YYYY-MM-DD")
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return service.QuizParams{
		Name:          r.Name,
		Description:   r.Description,
		ChapterID:     r.ChapterID,
		IsActive:      isActive,
		ReleaseDate:   releaseDate,
		Duration:      r.Duration,
		SingleAttempt: r.SingleAttempt,
	}, nil
}

// AdminListQuizzes godoc
// @Summary 管理端测验列表
// @Description 全量测验及作答次数，已被作答的单次测验标记为停用
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AdminQuizRow} "成功"
// @Router /api/admin/quizzes [get]
func (c *QuizController) AdminListQuizzes(ctx *gin.Context) {
	rows, err := c.QuizService.ListForAdmin()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "章节不存在"
// @Failure 409 {object} util.Response "测验名已存在"
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(params)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body QuizRequest true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验或章节不存在"
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(util.MustParseUint(ctx.Param("id")), params)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验及其题目
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *QuizController) writeQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrChapterNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrDuplicateName):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidDuration):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
