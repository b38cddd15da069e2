package controller

import (
	"net/http"

	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	Store   docstore.Store
	Backend string
}

func NewHealthController(store docstore.Store, backend string) *HealthController {
	return &HealthController{Store: store, Backend: backend}
}

// @Summary Health check
// @Description Reports service status and probes the document store
// @Tags System
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Store.Ping(ctx.Request.Context()); err != nil {
		logger.Log.Warn("Document store ping failed", zap.String("backend", c.Backend), zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Document store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"store": gin.H{"backend": c.Backend, "status": "up"},
		},
	})
}
