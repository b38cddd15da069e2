package controller

import (
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeacherController serves the teacher dashboard: batches, subjects,
// questions and results.
type TeacherController struct {
	CatalogService  *service.CatalogService
	QuestionService *service.QuestionService
	ResultService   *service.ResultService
}

func NewTeacherController(catalog *service.CatalogService, questions *service.QuestionService, results *service.ResultService) *TeacherController {
	return &TeacherController{
		CatalogService:  catalog,
		QuestionService: questions,
		ResultService:   results,
	}
}

// NameRequest defines model for creating a named batch or subject
// swagger:model NameRequest
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// QuestionRequest defines model for adding or editing a question
// swagger:model QuestionRequest
type QuestionRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required,min=2"`
	Answer   string   `json:"answer" binding:"required"`
}

func (r QuestionRequest) toModel() model.Question {
	return model.Question{Question: r.Question, Options: r.Options, Answer: r.Answer}
}

// CreateBatch godoc
// @Summary Create a batch
// @Tags Teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body NameRequest true "batch name"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/batches [post]
func (c *TeacherController) CreateBatch(ctx *gin.Context) {
	var req NameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	name, err := c.CatalogService.CreateBatch(ctx.Request.Context(), req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"name": name})
}

// CreateSubject godoc
// @Summary Create a subject in a batch
// @Tags Teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param body body NameRequest true "subject name"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/batches/{batch}/subjects [post]
func (c *TeacherController) CreateSubject(ctx *gin.Context) {
	var req NameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher := ""
	if user := util.GetUserFromContext(ctx); user != nil {
		teacher = user.Name
	}
	name, err := c.CatalogService.CreateSubject(ctx.Request.Context(), ctx.Param("batch"), req.Name, teacher)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"name": name})
}

// ListQuestions godoc
// @Summary List a subject's questions with their answers
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/teacher/batches/{batch}/subjects/{subject}/questions [get]
func (c *TeacherController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.List(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// AddQuestion godoc
// @Summary Add a question
// @Tags Teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Param body body QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/teacher/batches/{batch}/subjects/{subject}/questions [post]
func (c *TeacherController) AddQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Add(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"), req.toModel())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Description Attempts already in progress keep the version they started with
// @Tags Teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Param id path string true "question id"
// @Param body body QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/teacher/batches/{batch}/subjects/{subject}/questions/{id} [put]
func (c *TeacherController) UpdateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Update(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"), ctx.Param("id"), req.toModel())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/teacher/batches/{batch}/subjects/{subject}/questions/{id} [delete]
func (c *TeacherController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.Delete(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListResults godoc
// @Summary Results of a subject, sorted by student
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response{data=[]model.ResultSummary}
// @Router /api/teacher/batches/{batch}/subjects/{subject}/results [get]
func (c *TeacherController) ListResults(ctx *gin.Context) {
	results, err := c.ResultService.List(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// ResetResults godoc
// @Summary Delete every result of a subject
// @Description Students of the subject can take it again afterwards
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/teacher/batches/{batch}/subjects/{subject}/results [delete]
func (c *TeacherController) ResetResults(ctx *gin.Context) {
	n, err := c.ResultService.Reset(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": n})
}

// ExportResults godoc
// @Summary Export a subject's results as CSV
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/teacher/batches/{batch}/subjects/{subject}/results/export [post]
func (c *TeacherController) ExportResults(ctx *gin.Context) {
	url, err := c.ResultService.Export(ctx.Request.Context(), ctx.Param("batch"), ctx.Param("subject"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
