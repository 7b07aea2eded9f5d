package project

import (
	"beacon/bizerror"
	"beacon/domain"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterTasksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects+"/:id/tasks", middleWares...)
	g.POST("", handleAddTask)
	g.POST(":taskId/toggle", handleToggleTask)
}

func handleAddTask(c *gin.Context) {
	creation := domain.TaskCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := AddTaskFunc(parseId(c, "id"), creation.Title, findActor(c), c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusCreated, record)
}

func handleToggleTask(c *gin.Context) {
	record := ToggleTaskFunc(parseId(c, "id"), parseId(c, "taskId"), findActor(c), c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}
