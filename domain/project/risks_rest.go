package project

import (
	"beacon/bizerror"
	"beacon/domain"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterRisksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects+"/:id/risks", middleWares...)
	g.POST("", handleAddRisk)
	g.PUT(":riskId", handleUpdateRisk)
}

func handleAddRisk(c *gin.Context) {
	creation := domain.RiskCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := AddRiskFunc(parseId(c, "id"), &creation, findActor(c), c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusCreated, record)
}

func handleUpdateRisk(c *gin.Context) {
	patch := domain.RiskPatch{}
	if err := c.ShouldBindBodyWith(&patch, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := UpdateRiskFunc(parseId(c, "id"), parseId(c, "riskId"), &patch, findActor(c), c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}
