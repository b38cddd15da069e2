package controller

import (
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	TeacherService *service.TeacherService
	CatalogService *service.CatalogService
}

func NewAdminController(teachers *service.TeacherService, catalog *service.CatalogService) *AdminController {
	return &AdminController{TeacherService: teachers, CatalogService: catalog}
}

// CreateTeacherRequest defines model for adding a teacher account
// swagger:model CreateTeacherRequest
type CreateTeacherRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PasswordRequest defines model for resetting a password
// swagger:model PasswordRequest
type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ListTeachers godoc
// @Summary List teacher accounts
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TeacherInfo}
// @Router /api/admin/teachers [get]
func (c *AdminController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.TeacherService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, teachers)
}

// CreateTeacher godoc
// @Summary Add a teacher account
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateTeacherRequest true "account"
// @Success 201 {object} util.Response{data=model.TeacherInfo}
// @Failure 409 {object} util.Response
// @Router /api/admin/teachers [post]
func (c *AdminController) CreateTeacher(ctx *gin.Context) {
	var req CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	info, err := c.TeacherService.Create(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, info)
}

// ResetTeacherPassword godoc
// @Summary Reset a teacher's password
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "teacher"
// @Param body body PasswordRequest true "new password"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/teachers/{name}/password [put]
func (c *AdminController) ResetTeacherPassword(ctx *gin.Context) {
	var req PasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TeacherService.ResetPassword(ctx.Request.Context(), ctx.Param("name"), req.Password); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteTeacher godoc
// @Summary Remove a teacher account
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "teacher"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/teachers/{name} [delete]
func (c *AdminController) DeleteTeacher(ctx *gin.Context) {
	if err := c.TeacherService.Delete(ctx.Request.Context(), ctx.Param("name")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Overview godoc
// @Summary Batches with their subjects, creators and sizes
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.BatchOverview}
// @Router /api/admin/batches [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	overview, err := c.CatalogService.Overview(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// DeleteBatch godoc
// @Summary Delete a batch with its subjects, questions and results
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/batches/{batch} [delete]
func (c *AdminController) DeleteBatch(ctx *gin.Context) {
	if err := c.CatalogService.DeleteBatch(ctx.Request.Context(), ctx.Param("batch")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteSubject godoc
// @Summary Delete a subject with its questions and results
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/batches/{batch}/subjects/{subject} [delete]
func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSubject(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
