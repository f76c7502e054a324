package controller

import (
	"errors"
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	ChapterService *service.ChapterService
}

func NewChapterController(chapterService *service.ChapterService) *ChapterController {
	return &ChapterController{ChapterService: chapterService}
}

// swagger:model CreateChapterRequest
type CreateChapterRequest struct {
	SubjectID   uint   `json:"subject_id" binding:"required"`
	Name        string `json:"chapter_name" binding:"required"`
	Description string `json:"chapter_description" binding:"required"`
}

// CreateChapter godoc
// @Summary 创建章节
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateChapterRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.Create(req.SubjectID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// ListChapters godoc
// @Summary 章节列表
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Chapter} "成功"
// @Router /api/admin/chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	chapters, err := c.ChapterService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// swagger:model UpdateChapterRequest
type UpdateChapterRequest struct {
	Name        string `json:"chapter_name" binding:"required"`
	Description string `json:"chapter_description" binding:"required"`
}

// UpdateChapter godoc
// @Summary 更新章节
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "章节ID"
// @Param   body body UpdateChapterRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Chapter} "成功"
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/admin/chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	var req UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.Update(util.MustParseUint(ctx.Param("id")), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// DeleteChapter godoc
// @Summary 删除章节
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "章节ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/admin/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	if err := c.ChapterService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
