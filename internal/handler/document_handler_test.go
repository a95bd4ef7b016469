package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type fakeDocumentSrv struct {
	uploadedName string
	uploadedBody string
	testID       string
	deleted      string
	content      *service.DocumentContent
	err          error
}

func (f *fakeDocumentSrv) List(_ context.Context, testID string) ([]models.AuditDocument, error) {
	f.testID = testID
	return []models.AuditDocument{{ID: "d-1", AuditTestID: testID}}, f.err
}

func (f *fakeDocumentSrv) Upload(_ context.Context, testID string, upload service.DocumentUpload, _ service.RequestMeta) (*models.AuditDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(upload.Body)
	f.testID = testID
	f.uploadedName = upload.Name
	f.uploadedBody = string(body)
	return &models.AuditDocument{ID: "d-1", AuditTestID: testID, Name: upload.Name, SizeBytes: upload.Size}, nil
}

func (f *fakeDocumentSrv) Link(context.Context, string) (*dto.DocumentLinkResponse, error) {
	return &dto.DocumentLinkResponse{URL: "/api/v1/documents/download?token=t", ExpiresAt: time.Now().Add(time.Minute)}, f.err
}

func (f *fakeDocumentSrv) Download(context.Context, string) (*service.DocumentContent, error) {
	return f.content, f.err
}

func (f *fakeDocumentSrv) Delete(_ context.Context, id string, _ service.RequestMeta) error {
	f.deleted = id
	return f.err
}

func multipartRequest(t *testing.T, field, filename, content, name string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if name != "" {
		require.NoError(t, writer.WriteField("name", name))
	}
	require.NoError(t, writer.Close())

	c, w := newGinContext(http.MethodPost, "/audit-tests/t-1/documents", buf.Bytes())
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: "t-1"}}
	return c, w
}

func TestDocumentHandlerUpload(t *testing.T) {
	srv := &fakeDocumentSrv{}
	c, w := multipartRequest(t, "file", "arqueo.pdf", "%PDF-1.4 evidence", "")

	NewDocumentHandler(srv).Upload(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "t-1", srv.testID)
	assert.Equal(t, "arqueo.pdf", srv.uploadedName)
	assert.Equal(t, "%PDF-1.4 evidence", srv.uploadedBody)
}

func TestDocumentHandlerUploadUsesDisplayName(t *testing.T) {
	srv := &fakeDocumentSrv{}
	c, w := multipartRequest(t, "file", "scan001.pdf", "%PDF-1.4", "Arqueo de caja marzo")

	NewDocumentHandler(srv).Upload(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Arqueo de caja marzo", srv.uploadedName)
}

func TestDocumentHandlerUploadRequiresFile(t *testing.T) {
	c, w := multipartRequest(t, "", "", "", "solo nombre")

	NewDocumentHandler(&fakeDocumentSrv{}).Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandlerDownload(t *testing.T) {
	srv := &fakeDocumentSrv{content: &service.DocumentContent{
		Document: &models.AuditDocument{Name: "arqueo.pdf", MimeType: "application/pdf", SizeBytes: 8},
		Body:     io.NopCloser(strings.NewReader("%PDF-1.4")),
	}}
	c, w := newGinContext(http.MethodGet, "/documents/download?token=t", nil)

	NewDocumentHandler(srv).Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestDocumentHandlerDownloadForbidden(t *testing.T) {
	srv := &fakeDocumentSrv{err: appErrors.Clone(appErrors.ErrForbidden, "invalid token")}
	c, w := newGinContext(http.MethodGet, "/documents/download?token=forged", nil)

	NewDocumentHandler(srv).Download(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDocumentHandlerDelete(t *testing.T) {
	srv := &fakeDocumentSrv{}
	c, _ := newGinContext(http.MethodDelete, "/documents/d-7", nil)
	c.Params = gin.Params{{Key: "id", Value: "d-7"}}

	NewDocumentHandler(srv).Delete(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "d-7", srv.deleted)
}
