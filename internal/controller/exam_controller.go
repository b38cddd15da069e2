package controller

import (
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExamController is the student screen: enter, start, answer, submit, view
// result.
type ExamController struct {
	AttemptService *service.AttemptService
}

func NewExamController(attemptService *service.AttemptService) *ExamController {
	return &ExamController{AttemptService: attemptService}
}

// AnswerRequest defines model for recording one answer
// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Option     string `json:"option" binding:"required"`
}

// SubmitRequest defines model for submitting an exam. Answers are optional
// and merged over the ones already recorded.
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answers map[string]string `json:"answers"`
}

func attemptKey(ctx *gin.Context) (model.AttemptKey, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return model.AttemptKey{}, false
	}
	return model.AttemptKey{
		StudentID: user.Name,
		BatchID:   ctx.Param("batch"),
		SubjectID: ctx.Param("subject"),
	}, true
}

// Enter godoc
// @Summary Current state of an exam
// @Description not_started, in_progress (frozen questions without answers), or blocked (with the stored result)
// @Tags Student
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response{data=model.AttemptView}
// @Router /api/student/exams/{batch}/{subject} [get]
func (c *ExamController) Enter(ctx *gin.Context) {
	key, ok := attemptKey(ctx)
	if !ok {
		return
	}
	view, err := c.AttemptService.Enter(ctx.Request.Context(), key)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Start godoc
// @Summary Start an exam
// @Description Freezes a shuffled question order. Starting again while in progress returns the same attempt.
// @Tags Student
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response{data=model.AttemptView}
// @Failure 409 {object} util.Response "already taken"
// @Failure 422 {object} util.Response "no questions"
// @Router /api/student/exams/{batch}/{subject}/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	key, ok := attemptKey(ctx)
	if !ok {
		return
	}
	view, err := c.AttemptService.Start(ctx.Request.Context(), key)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Answer godoc
// @Summary Record an answer
// @Tags Student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Param body body AnswerRequest true "answer"
// @Success 200 {object} util.Response{data=model.AttemptView}
// @Failure 400 {object} util.Response
// @Router /api/student/exams/{batch}/{subject}/answers [put]
func (c *ExamController) Answer(ctx *gin.Context) {
	key, ok := attemptKey(ctx)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AttemptService.Answer(ctx.Request.Context(), key, req.QuestionID, req.Option)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Submit godoc
// @Summary Submit an exam
// @Description Grades the frozen questions and stores the result exactly once
// @Tags Student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Param body body SubmitRequest false "final answers"
// @Success 200 {object} util.Response{data=model.ResultRecord}
// @Failure 409 {object} util.Response "already submitted"
// @Router /api/student/exams/{batch}/{subject}/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	key, ok := attemptKey(ctx)
	if !ok {
		return
	}
	var req SubmitRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	rec, err := c.AttemptService.Submit(ctx.Request.Context(), key, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// Result godoc
// @Summary Stored result of a submitted exam
// @Tags Student
// @Produce json
// @Security ApiKeyAuth
// @Param batch path string true "batch"
// @Param subject path string true "subject"
// @Success 200 {object} util.Response{data=model.ResultRecord}
// @Failure 404 {object} util.Response
// @Router /api/student/exams/{batch}/{subject}/result [get]
func (c *ExamController) Result(ctx *gin.Context) {
	key, ok := attemptKey(ctx)
	if !ok {
		return
	}
	rec, err := c.AttemptService.Result(ctx.Request.Context(), key)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}
