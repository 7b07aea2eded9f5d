package project

import (
	"beacon/bizerror"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterFilesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects+"/:id/files", middleWares...)
	g.POST("", handleAttachFile)
	g.GET(":fileId/content", handleFileContent)
}

func handleAttachFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	f, err := header.Open()
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record, err := AttachFileFunc(parseId(c, "id"), header.Filename, contentType, header.Size, f,
		findActor(c), c.Request.Context())
	if err != nil {
		panic(err)
	}
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusCreated, record)
}

func handleFileContent(c *gin.Context) {
	r, file, err := FileContentFunc(parseId(c, "id"), parseId(c, "fileId"), c.Request.Context())
	if err != nil {
		panic(err)
	}
	defer r.Close()

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Header("Content-Type", file.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, r); err != nil {
		panic(err)
	}
}
