package controller

import (
	"errors"
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// swagger:model SubjectRequest
type SubjectRequest struct {
	Name        string `json:"subject_name" binding:"required"`
	Description string `json:"subject_description" binding:"required"`
}

// CreateSubject godoc
// @Summary 创建科目
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubjectRequest true "科目信息"
// @Success 201 {object} util.Response{data=model.Subject} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "科目名已存在"
// @Router /api/admin/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Create(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrDuplicateName) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// ListSubjects godoc
// @Summary 科目列表
// @Description 返回全部科目及其章节
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject} "成功"
// @Router /api/admin/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.SubjectService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// UpdateSubject godoc
// @Summary 更新科目
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "科目ID"
// @Param   body body SubjectRequest true "科目信息"
// @Success 200 {object} util.Response{data=model.Subject} "成功"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(util.MustParseUint(ctx.Param("id")), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrDuplicateName):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary 删除科目
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "科目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	if err := c.SubjectService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
