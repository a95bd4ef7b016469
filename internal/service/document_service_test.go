package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
	"github.com/noah-isme/audit-mgmt-api/pkg/storage"
)

type fakeDocuments struct {
	docs map[string]*models.AuditDocument
}

func (f *fakeDocuments) Create(_ context.Context, doc *models.AuditDocument) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocuments) FindByID(_ context.Context, id string) (*models.AuditDocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, notFound()
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocuments) ListByTest(_ context.Context, testID string) ([]models.AuditDocument, error) {
	var out []models.AuditDocument
	for _, doc := range f.docs {
		if doc.AuditTestID == testID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeDocuments) Delete(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

var pdfHeader = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func newDocumentFixture(t *testing.T, maxSize int64) (*DocumentService, *fakeDocuments, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	docs := &fakeDocuments{docs: map[string]*models.AuditDocument{}}
	tests := &fakeAuditTests{test: models.AuditTest{ID: testID, AuditProgramID: programID}}
	svc := NewDocumentService(docs, tests, store, storage.NewSignedURLSigner("doc-secret", 30*time.Minute), nil, nil, DocumentConfig{
		MaxSizeBytes: maxSize,
		AllowedMIMEs: []string{"application/pdf", "image/png"},
		APIPrefix:    "/api/v1",
	})
	return svc, docs, store
}

func TestDocumentUploadLinkDownloadDelete(t *testing.T) {
	svc, docs, store := newDocumentFixture(t, 1<<20)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, testID, DocumentUpload{Name: "../acta final.pdf", Size: int64(len(pdfHeader)), Body: bytes.NewReader(pdfHeader)}, RequestMeta{ActorID: userA})
	require.NoError(t, err)
	assert.Equal(t, "acta_final.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, int64(len(pdfHeader)), doc.SizeBytes)
	assert.Len(t, doc.Checksum, 64)
	assert.True(t, strings.HasPrefix(doc.StorageKey, "tests/"+testID+"/"))
	assert.Equal(t, userA, doc.UploadedBy)

	listed, err := svc.List(ctx, testID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	link, err := svc.Link(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link.URL, "/api/v1/documents/download?token="))

	content, err := svc.Download(ctx, extractToken(link.URL))
	require.NoError(t, err)
	body, err := io.ReadAll(content.Body)
	require.NoError(t, content.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, pdfHeader, body)

	require.NoError(t, svc.Delete(ctx, doc.ID, RequestMeta{}))
	assert.Empty(t, docs.docs)
	_, err = store.Download(ctx, doc.StorageKey)
	assert.Error(t, err)
}

func TestDocumentUploadRejectsDisallowedType(t *testing.T) {
	svc, docs, _ := newDocumentFixture(t, 1<<20)
	payload := []byte("#!/bin/sh\necho hola\n")

	_, err := svc.Upload(context.Background(), testID, DocumentUpload{Name: "script.pdf", Body: bytes.NewReader(payload)}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, docs.docs)
}

func TestDocumentUploadEnforcesSize(t *testing.T) {
	svc, docs, _ := newDocumentFixture(t, int64(len(pdfHeader)-1))

	_, err := svc.Upload(context.Background(), testID, DocumentUpload{Name: "acta.pdf", Size: int64(len(pdfHeader)), Body: bytes.NewReader(pdfHeader)}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Upload(context.Background(), testID, DocumentUpload{Name: "acta.pdf", Body: bytes.NewReader(pdfHeader)}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, docs.docs)
}

func TestDocumentUploadUnknownTest(t *testing.T) {
	svc, _, _ := newDocumentFixture(t, 1<<20)

	_, err := svc.Upload(context.Background(), eventID, DocumentUpload{Name: "acta.pdf", Body: bytes.NewReader(pdfHeader)}, RequestMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDocumentDownloadRejectsForeignToken(t *testing.T) {
	svc, _, _ := newDocumentFixture(t, 1<<20)
	other := storage.NewSignedURLSigner("other-secret", time.Minute)
	token, _, err := other.Generate("doc", "tests/x/y.pdf")
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), token)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", detectMIME(pdfHeader, "acta.bin"))
	assert.Equal(t, "text/plain", detectMIME([]byte("hola"), "nota.pdf"))
	assert.Equal(t, "image/png", detectMIME([]byte("\x89PNG\r\n\x1a\n0000"), "captura"))
}
