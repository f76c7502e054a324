package controller

import (
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// ExportScores godoc
// @Summary 导出个人成绩
// @Description 触发异步导出任务，CSV 报表生成后通过邮件附件送达
// @Tags 成绩
// @Produce  json
// @Security ApiKeyAuth
// @Success 202 {object} util.Response{data=object} "任务已受理"
// @Router /api/export/scores [post]
func (c *ExportController) ExportScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	jobID, err := c.ExportService.Enqueue(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Accepted(ctx, gin.H{"job_id": jobID})
}
