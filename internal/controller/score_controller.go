package controller

import (
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

// Scorecard godoc
// @Summary 成绩单
// @Description 当前用户的全部历史成绩
// @Tags 成绩
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ScorecardRow} "成功"
// @Router /api/scorecard [get]
func (c *ScoreController) Scorecard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ScoreService.Scorecard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
