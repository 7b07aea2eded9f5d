package project

import (
	"beacon/bizerror"
	"beacon/domain"
	"errors"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProjects = "/v1/projects"
)

// actor attribution of mutations, single user desktop origin.
const actorHeader = "X-Actor"
const defaultActor = "local"

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects, middleWares...)
	g.POST("", handleCreateProject)
	g.GET("", handleQueryProjects)
	g.GET(":id", handleDetailProject)
	g.PUT(":id", handleUpdateProject)
	g.DELETE(":id", handleDeleteProject)
}

func handleCreateProject(c *gin.Context) {
	creation := domain.ProjectCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := CreateProjectFunc(&creation, findActor(c), c.Request.Context())
	c.JSON(http.StatusCreated, record)
}

func handleQueryProjects(c *gin.Context) {
	query := domain.ProjectQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	c.JSON(http.StatusOK, QueryProjectsFunc(query))
}

func handleDetailProject(c *gin.Context) {
	record, err := DetailProjectFunc(parseId(c, "id"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleUpdateProject(c *gin.Context) {
	patch := domain.ProjectPatch{}
	if err := c.ShouldBindBodyWith(&patch, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := UpdateProjectFunc(parseId(c, "id"), &patch, findActor(c), c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}

func handleDeleteProject(c *gin.Context) {
	DeleteProjectFunc(parseId(c, "id"), findActor(c), c.Request.Context())
	c.Status(http.StatusNoContent)
}

func parseId(c *gin.Context, param string) types.ID {
	parsedId, err := types.ParseID(c.Param(param))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param(param) + "'")})
	}
	return parsedId
}

func findActor(c *gin.Context) string {
	actor := c.GetHeader(actorHeader)
	if actor == "" {
		return defaultActor
	}
	return actor
}
