package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

// RequestMeta identifies who performed a mutation and from where.
type RequestMeta struct {
	ActorID   string
	IP        string
	UserAgent string
}

// AuditLogWriter persists audit trail entries.
type AuditLogWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// auditTrail records mutations. Failures are logged and never fail the request.
type auditTrail struct {
	writer AuditLogWriter
	logger *zap.Logger
}

func newAuditTrail(writer AuditLogWriter, logger *zap.Logger) auditTrail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return auditTrail{writer: writer, logger: logger}
}

func (a auditTrail) record(ctx context.Context, meta RequestMeta, action, resource, resourceID string, oldValues, newValues interface{}) {
	if a.writer == nil {
		return
	}
	entry := &models.AuditLog{
		Action:    action,
		Resource:  resource,
		OldValues: snapshot(oldValues),
		NewValues: snapshot(newValues),
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}
	if meta.ActorID != "" {
		actor := meta.ActorID
		entry.UserID = &actor
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	if err := a.writer.Create(ctx, entry); err != nil {
		a.logger.Warn("failed to record audit log",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}
}

func snapshot(v interface{}) models.RawJSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return models.RawJSON(data)
}

// loadError maps a repository read failure: missing rows become 404.
func loadError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return writeError(err, "failed to load "+resource)
}

// writeError keeps typed errors (translated constraint violations) and wraps the rest as internal.
func writeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

var (
	slugStrip   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
)

// slugify derives a URL-safe slug, folding Spanish accents: "Gestión de Compras" -> "gestion-de-compras".
func slugify(value string) string {
	folded, _, err := transform.String(slugStrip, value)
	if err != nil {
		folded = value
	}
	folded = slugInvalid.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(folded, "-")
}

// uniqueIDs trims, drops blanks and duplicates, and sorts ids.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type pairKey struct{ process, control string }

// uniquePairs drops duplicate process/control pairs keeping first-seen order.
func uniquePairs(pairs []models.ProcessControl) []models.ProcessControl {
	seen := make(map[pairKey]struct{}, len(pairs))
	out := make([]models.ProcessControl, 0, len(pairs))
	for _, p := range pairs {
		key := pairKey{p.ProcessID, p.ControlID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// outsideScope returns the first pair not present in allowed, or nil.
func outsideScope(pairs []models.ProcessControl, allowed map[pairKey]struct{}) *models.ProcessControl {
	for i := range pairs {
		if _, ok := allowed[pairKey{pairs[i].ProcessID, pairs[i].ControlID}]; !ok {
			return &pairs[i]
		}
	}
	return nil
}

func outOfScopeError(pair *models.ProcessControl, where string) error {
	return appErrors.Clone(appErrors.ErrOutOfScope, "process "+pair.ProcessID+" / control "+pair.ControlID+" is not part of "+where)
}

type slugChecker func(ctx context.Context, slug, excludeID string) (bool, error)

// claimSlug rejects empty slugs and slugs already held by another row.
func claimSlug(ctx context.Context, exists slugChecker, slug, excludeID, resource string) error {
	if slug == "" {
		return appErrors.Clone(appErrors.ErrValidation, resource+" name must contain letters or digits")
	}
	taken, err := exists(ctx, slug, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check "+resource+" slug")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, resource+" name already exists")
	}
	return nil
}

func pairSet(pairs []models.ProcessControl) map[pairKey]struct{} {
	set := make(map[pairKey]struct{}, len(pairs))
	for _, p := range pairs {
		set[pairKey{p.ProcessID, p.ControlID}] = struct{}{}
	}
	return set
}
