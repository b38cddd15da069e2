package controller

import (
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController lists what can be picked on the login screens.
type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalog}
}

// ListBatches godoc
// @Summary List batches
// @Tags Catalog
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/batches [get]
func (c *CatalogController) ListBatches(ctx *gin.Context) {
	batches, err := c.CatalogService.ListBatches(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, batches)
}

// ListSubjects godoc
// @Summary List the subjects of a batch
// @Tags Catalog
// @Produce json
// @Param batch path string true "batch"
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/batches/{batch}/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.CatalogService.ListSubjects(ctx.Request.Context(), ctx.Param("batch"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}
