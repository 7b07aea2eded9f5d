package export

import (
	"beacon/bizerror"
	"beacon/currency"
	"beacon/domain"
	"beacon/domain/project"
	"bytes"
	"fmt"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

var (
	PathExport = "/v1/export/projects"
)

func RegisterExportRestAPI(r *gin.Engine, service *currency.Service, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathExport, middleWares...)
	g.GET("", func(c *gin.Context) { handleExportProjects(c, service) })
}

// handleExportProjects streams the document only after it was fully built:
// an export failure must surface as a clean error body, not a half written
// download.
func handleExportProjects(c *gin.Context, service *currency.Service) {
	display := c.Query("currency")
	if display == "" {
		display = project.DefaultCurrency
	}

	projects := selectProjects(c)

	buf := bytes.Buffer{}
	if err := ProjectsCSVFunc(&buf, projects, display, service); err != nil {
		panic(fmt.Errorf("%w: %v", bizerror.ErrExportFailed, err))
	}

	c.Header("Content-Disposition", `attachment; filename="projects.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func selectProjects(c *gin.Context) []domain.Project {
	ids := c.QueryArray("id")
	if len(ids) == 0 {
		return project.QueryProjectsFunc(domain.ProjectQuery{})
	}

	projects := make([]domain.Project, 0, len(ids))
	for _, raw := range ids {
		id, err := types.ParseID(raw)
		if err != nil {
			panic(&bizerror.ErrBadParam{Cause: fmt.Errorf("invalid id '%s'", raw)})
		}
		record, err := project.DetailProjectFunc(id)
		if err != nil {
			panic(err)
		}
		projects = append(projects, *record)
	}
	return projects
}
