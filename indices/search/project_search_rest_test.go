package search

import (
	"beacon/bizerror"
	"beacon/domain"
	"beacon/indices"
	"beacon/testinfra"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestHandleSearchProjects(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	RegisterProjectSearchRestAPI(router)

	t.Run("should answer matched documents", func(t *testing.T) {
		var gotQuery domain.ProjectQuery
		SearchProjectsFunc = func(q domain.ProjectQuery, ctx context.Context) ([]indices.ProjectDocument, error) {
			gotQuery = q
			return []indices.ProjectDocument{
				{Project: domain.Project{ID: 100, Name: "website relaunch"}, Overdue: true},
			}, nil
		}

		req := httptest.NewRequest(http.MethodGet, PathProjectSearches+"?name=website&overdue=true", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"name":"website relaunch"`))
		Expect(body).To(ContainSubstring(`"overdue":true`))
		Expect(gotQuery.Name).To(Equal("website"))
		Expect(gotQuery.Overdue).To(BeTrue())
	})

	t.Run("handle error", func(t *testing.T) {
		SearchProjectsFunc = func(q domain.ProjectQuery, ctx context.Context) ([]indices.ProjectDocument, error) {
			return nil, errors.New("error on search projects")
		}

		req := httptest.NewRequest(http.MethodGet, PathProjectSearches, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error","message":"error on search projects","data":null}`))
	})
}
