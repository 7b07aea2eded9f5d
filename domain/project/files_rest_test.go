package project

import (
	"beacon/bizerror"
	"beacon/domain"
	"beacon/testinfra"
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestHandleAttachFile(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	RegisterFilesRestAPI(router)

	t.Run("should require a multipart file part", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, PathProjects+"/100/files", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
	})

	t.Run("should attach uploaded file", func(t *testing.T) {
		uploaded := &bytes.Buffer{}
		var gotName, gotContentType string
		AttachFileFunc = func(projectId types.ID, name, contentType string, size int64, content io.Reader,
			actor string, ctx context.Context) (*domain.FileMeta, error) {
			gotName = name
			gotContentType = contentType
			if _, err := io.Copy(uploaded, content); err != nil {
				return nil, err
			}
			return &domain.FileMeta{ID: 500, Name: name, ContentType: contentType, Size: size}, nil
		}

		data := "------WebKitFormBoundaryWdDAe6hxfa4nl2Ig\n" +
			"Content-Disposition: form-data; name=\"file\"; filename=\"report.pdf\"\n" +
			"Content-Type: application/pdf\n" +
			"\n" +
			"pdf content\n" +
			"------WebKitFormBoundaryWdDAe6hxfa4nl2Ig--"

		req := httptest.NewRequest(http.MethodPost, PathProjects+"/100/files", bytes.NewBufferString(data))
		req.Header.Set("CONTENT-TYPE", "multipart/form-data; boundary=----WebKitFormBoundaryWdDAe6hxfa4nl2Ig")
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body).To(ContainSubstring(`"name":"report.pdf"`))
		Expect(gotName).To(Equal("report.pdf"))
		Expect(gotContentType).To(Equal("application/pdf"))
		Expect(uploaded.String()).To(Equal("pdf content"))
	})
}

func TestHandleFileContent(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	RegisterFilesRestAPI(router)

	t.Run("should answer 404 for unknown file", func(t *testing.T) {
		FileContentFunc = func(projectId, fileId types.ID, ctx context.Context) (io.ReadCloser, *domain.FileMeta, error) {
			return nil, nil, bizerror.ErrNotFound
		}
		req := httptest.NewRequest(http.MethodGet, PathProjects+"/100/files/404/content", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(`{"code":"common.record_not_found","message":"record not found","data":null}`))
	})

	t.Run("should stream content with download headers", func(t *testing.T) {
		FileContentFunc = func(projectId, fileId types.ID, ctx context.Context) (io.ReadCloser, *domain.FileMeta, error) {
			meta := domain.FileMeta{ID: fileId, Name: "notes.txt", ContentType: "text/plain"}
			return ioutil.NopCloser(strings.NewReader("notes")), &meta, nil
		}
		req := httptest.NewRequest(http.MethodGet, PathProjects+"/100/files/500/content", nil)
		status, body, resp := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(Equal("notes"))
		Expect(resp.Header.Get("Content-Type")).To(Equal("text/plain"))
		Expect(resp.Header.Get("Content-Disposition")).To(Equal(`attachment; filename="notes.txt"`))
	})
}
