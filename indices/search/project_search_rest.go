package search

import (
	"beacon/bizerror"
	"beacon/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathProjectSearches = "/v1/project-searches"
)

func RegisterProjectSearchRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjectSearches, middleWares...)
	g.GET("", handleSearchProjects)
}

func handleSearchProjects(c *gin.Context) {
	query := domain.ProjectQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	docs, err := SearchProjectsFunc(query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, docs)
}
