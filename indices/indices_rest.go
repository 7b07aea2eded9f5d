package indices

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathIndexRequests = "/v1/index-requests"
)

func RegisterIndicesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathIndexRequests, middleWares...)
	g.POST("", handleCreateIndexRequest)
}

func handleCreateIndexRequest(c *gin.Context) {
	scheduled, err := ScheduleNewSyncRunFunc()
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"scheduled": scheduled})
}
