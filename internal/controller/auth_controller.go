package controller

import (
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// StudentLoginRequest defines model for student login
// swagger:model StudentLoginRequest
type StudentLoginRequest struct {
	Name string `json:"name" binding:"required"`
}

// TeacherLoginRequest defines model for teacher login
// swagger:model TeacherLoginRequest
type TeacherLoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest defines model for admin login
// swagger:model AdminLoginRequest
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// StudentLogin godoc
// @Summary Student login
// @Description Students sign in with their name only
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body StudentLoginRequest true "student name"
// @Success 200 {object} util.Response{data=model.AuthToken}
// @Failure 400 {object} util.Response
// @Router /api/auth/student [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.StudentLogin(req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, token)
}

// TeacherLogin godoc
// @Summary Teacher login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body TeacherLoginRequest true "teacher credentials"
// @Success 200 {object} util.Response{data=model.AuthToken}
// @Failure 401 {object} util.Response
// @Router /api/auth/teacher [post]
func (c *AuthController) TeacherLogin(ctx *gin.Context) {
	var req TeacherLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.TeacherLogin(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, token)
}

// AdminLogin godoc
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "admin password"
// @Success 200 {object} util.Response{data=model.AuthToken}
// @Failure 401 {object} util.Response
// @Router /api/auth/admin [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.AdminLogin(req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, token)
}
