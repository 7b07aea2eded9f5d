package currency

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathCurrencies = "/v1/currencies"
)

func RegisterCurrenciesRestAPI(r *gin.Engine, service *Service, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathCurrencies, middleWares...)
	g.GET("rates", func(c *gin.Context) { handleQueryRates(c, service) })
	g.POST("rates/refresh", func(c *gin.Context) { handleRefreshRates(c, service) })
}

func handleQueryRates(c *gin.Context, service *Service) {
	c.JSON(http.StatusOK, gin.H{
		"rates":       service.Rates(),
		"refreshTime": service.RefreshTime(),
	})
}

func handleRefreshRates(c *gin.Context, service *Service) {
	service.RefreshRates(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"rates":       service.Rates(),
		"refreshTime": service.RefreshTime(),
	})
}
