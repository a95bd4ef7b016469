package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
	"github.com/noah-isme/audit-mgmt-api/pkg/storage"
)

type documentRepository interface {
	Create(ctx context.Context, doc *models.AuditDocument) error
	FindByID(ctx context.Context, id string) (*models.AuditDocument, error)
	ListByTest(ctx context.Context, testID string) ([]models.AuditDocument, error)
	Delete(ctx context.Context, id string) error
}

type testFinder interface {
	FindByID(ctx context.Context, id string) (*models.AuditTest, error)
}

// DocumentConfig limits uploads and shapes download links.
type DocumentConfig struct {
	BackendName  string
	MaxSizeBytes int64
	AllowedMIMEs []string
	APIPrefix    string
}

// DocumentUpload is one evidence file received from a client.
type DocumentUpload struct {
	Name string
	Size int64
	Body io.Reader
}

// DocumentContent is an open evidence stream ready to be served.
type DocumentContent struct {
	Document *models.AuditDocument
	Body     io.ReadCloser
}

// DocumentService stores audit evidence in the configured backend.
type DocumentService struct {
	repo    documentRepository
	tests   testFinder
	backend storage.Backend
	signer  *storage.SignedURLSigner
	audit   auditTrail
	logger  *zap.Logger
	cfg     DocumentConfig
	allowed map[string]struct{}
}

// NewDocumentService constructs the service.
func NewDocumentService(repo documentRepository, tests testFinder, backend storage.Backend, signer *storage.SignedURLSigner, audit AuditLogWriter, logger *zap.Logger, cfg DocumentConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = 10 << 20
	}
	if cfg.BackendName == "" {
		cfg.BackendName = "local"
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &DocumentService{
		repo:    repo,
		tests:   tests,
		backend: backend,
		signer:  signer,
		audit:   newAuditTrail(audit, logger),
		logger:  logger,
		cfg:     cfg,
		allowed: allowed,
	}
}

// List returns the evidence attached to a test.
func (s *DocumentService) List(ctx context.Context, testID string) ([]models.AuditDocument, error) {
	if _, err := s.tests.FindByID(ctx, testID); err != nil {
		return nil, loadError(err, "audit test")
	}
	docs, err := s.repo.ListByTest(ctx, testID)
	if err != nil {
		return nil, writeError(err, "failed to list documents")
	}
	return docs, nil
}

// Upload sniffs, stores and registers an evidence file for a test.
func (s *DocumentService) Upload(ctx context.Context, testID string, upload DocumentUpload, meta RequestMeta) (*models.AuditDocument, error) {
	if _, err := s.tests.FindByID(ctx, testID); err != nil {
		return nil, loadError(err, "audit test")
	}
	name := cleanFilename(upload.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file name is required")
	}
	if upload.Size > s.cfg.MaxSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds maximum size")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read upload")
	}
	head = head[:n]
	if n == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	mimeType := detectMIME(head, name)
	if !s.mimeAllowed(mimeType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file type "+mimeType+" is not allowed")
	}

	id := uuid.NewString()
	key := "tests/" + testID + "/" + id + "-" + name
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), upload.Body), s.cfg.MaxSizeBytes+1)
	result, err := s.backend.Upload(ctx, key, body, mimeType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}
	if result.Size > s.cfg.MaxSizeBytes {
		s.removeBlob(ctx, key)
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds maximum size")
	}

	doc := &models.AuditDocument{
		ID:          id,
		AuditTestID: testID,
		Name:        name,
		StorageKey:  key,
		Backend:     s.cfg.BackendName,
		MimeType:    mimeType,
		SizeBytes:   result.Size,
		Checksum:    result.Checksum,
		UploadedBy:  meta.ActorID,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		s.removeBlob(ctx, key)
		return nil, writeError(err, "failed to register document")
	}
	s.audit.record(ctx, meta, models.AuditActionUpload, "documents", doc.ID, nil, doc)
	return doc, nil
}

// Link returns a short-lived download URL: presigned when the backend supports it, HMAC-signed otherwise.
func (s *DocumentService) Link(ctx context.Context, id string) (*dto.DocumentLinkResponse, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "document")
	}
	if presigner, ok := s.backend.(storage.Presigner); ok {
		url, err := presigner.PresignURL(ctx, doc.StorageKey)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to presign document url")
		}
		return &dto.DocumentLinkResponse{URL: url, ExpiresAt: time.Now().UTC().Add(s.signer.TTL())}, nil
	}
	token, expiresAt, err := s.signer.Generate(doc.ID, doc.StorageKey)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign document url")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	return &dto.DocumentLinkResponse{
		URL:       prefix + "/documents/download?token=" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to the document stream.
func (s *DocumentService) Download(ctx context.Context, token string) (*DocumentContent, error) {
	signed, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	doc, err := s.repo.FindByID(ctx, signed.SubjectID)
	if err != nil {
		return nil, loadError(err, "document")
	}
	if doc.StorageKey != signed.Key {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	body, err := s.backend.Download(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document content not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read document")
	}
	return &DocumentContent{Document: doc, Body: body}, nil
}

// Delete removes the row and then the blob.
func (s *DocumentService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "document")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "failed to delete document")
	}
	s.removeBlob(ctx, doc.StorageKey)
	s.audit.record(ctx, meta, models.AuditActionDelete, "documents", id, doc, nil)
	return nil
}

func (s *DocumentService) removeBlob(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		s.logger.Warn("failed to delete document blob", zap.String("key", key), zap.Error(err))
	}
}

func (s *DocumentService) mimeAllowed(mimeType string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[mimeType]
	return ok
}

// detectMIME sniffs content. Generic binary results defer to the extension; plain
// text only refines to another text type.
func detectMIME(head []byte, name string) string {
	detected, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(name))))
	if err != nil || byExt == "" {
		return detected
	}
	switch {
	case detected == "application/octet-stream", detected == "application/zip":
		return byExt
	case detected == "text/plain" && strings.HasPrefix(byExt, "text/"):
		return byExt
	}
	return detected
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeFilename.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}
