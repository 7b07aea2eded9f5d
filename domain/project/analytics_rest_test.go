package project

import (
	"beacon/bizerror"
	"beacon/testinfra"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

type staticConverter struct{}

func (staticConverter) Convert(amount float64, from, to string) (float64, error) {
	return amount, nil
}

func TestHandleAnalytics(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	RegisterAnalyticsRestAPI(router, staticConverter{})

	t.Run("should default the display currency", func(t *testing.T) {
		var gotDisplay string
		AnalyzeFunc = func(display string, conv Converter) (*Summary, error) {
			gotDisplay = display
			return &Summary{DisplayCurrency: display}, nil
		}
		req := httptest.NewRequest(http.MethodGet, PathAnalytics, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(gotDisplay).To(Equal(DefaultCurrency))
		Expect(body).To(ContainSubstring(`"displayCurrency":"BRL"`))
	})

	t.Run("should honor the currency parameter", func(t *testing.T) {
		var gotDisplay string
		AnalyzeFunc = func(display string, conv Converter) (*Summary, error) {
			gotDisplay = display
			return &Summary{DisplayCurrency: display}, nil
		}
		req := httptest.NewRequest(http.MethodGet, PathAnalytics+"?currency=USD", nil)
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(gotDisplay).To(Equal("USD"))
	})

	t.Run("should map unknown currency to bad request", func(t *testing.T) {
		AnalyzeFunc = func(display string, conv Converter) (*Summary, error) {
			return nil, bizerror.ErrUnknownCurrency
		}
		req := httptest.NewRequest(http.MethodGet, PathAnalytics+"?currency=XXX", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"currency.unknown_currency","message":"unknown currency","data":null}`))
	})
}
