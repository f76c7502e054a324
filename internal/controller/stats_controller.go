package controller

import (
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// MyStats godoc
// @Summary 个人统计
// @Description 当前用户按科目维度的作答次数与最高分
// @Tags 成绩
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StatsResponse} "成功"
// @Router /api/stats/me [get]
func (c *StatsController) MyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.UserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// AdminStats godoc
// @Summary 平台统计
// @Description 全平台按科目维度的作答次数与最高分
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StatsResponse} "成功"
// @Router /api/admin/stats [get]
func (c *StatsController) AdminStats(ctx *gin.Context) {
	stats, err := c.StatsService.PlatformStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
