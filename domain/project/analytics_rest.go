package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathAnalytics = "/v1/analytics"
)

func RegisterAnalyticsRestAPI(r *gin.Engine, conv Converter, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathAnalytics, middleWares...)
	g.GET("", func(c *gin.Context) { handleAnalytics(c, conv) })
}

func handleAnalytics(c *gin.Context, conv Converter) {
	display := c.Query("currency")
	if display == "" {
		display = DefaultCurrency
	}

	summary, err := AnalyzeFunc(display, conv)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, summary)
}
