package project

import (
	"beacon/bizerror"
	"beacon/domain"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterCommentsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects+"/:id/comments", middleWares...)
	g.POST("", handleAddComment)
}

func handleAddComment(c *gin.Context) {
	creation := domain.CommentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record := AddCommentFunc(parseId(c, "id"), creation.Text, creation.Author, c.Request.Context())
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusCreated, record)
}
