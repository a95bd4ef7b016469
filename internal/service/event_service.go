package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Close(ctx context.Context, id string) error
	Risks(ctx context.Context, eventID string) ([]string, error)
	ReplaceRisks(ctx context.Context, eventID string, riskIDs []string) error
}

// EventRequest captures fields for creating or updating events.
type EventRequest struct {
	CompanyID   string    `json:"company_id" validate:"required,uuid"`
	Name        string    `json:"name" validate:"required,max=150"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at" validate:"required"`
	LossAmount  float64   `json:"loss_amount" validate:"gte=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=Abierto 'En análisis' Cerrado"`
}

// EventDetail is an event with the risks that materialised.
type EventDetail struct {
	models.Event
	RiskIDs []string `json:"risk_ids"`
}

// EventService handles risk event workflows.
type EventService struct {
	repo      eventRepository
	audit     auditTrail
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService creates an event service.
func NewEventService(repo eventRepository, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, audit: newAuditTrail(audit, logger), validator: validate, logger: logger}
}

// List returns paginated events.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, *models.Pagination, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, writeError(err, "failed to list events")
	}
	return events, models.NewPagination(filter.ListOptions, total), nil
}

// Get returns an event with its risks.
func (s *EventService) Get(ctx context.Context, id string) (*EventDetail, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "event")
	}
	risks, err := s.repo.Risks(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load event risks")
	}
	return &EventDetail{Event: *event, RiskIDs: risks}, nil
}

// Create records an event. New events start Abierto unless a status is given.
func (s *EventService) Create(ctx context.Context, req EventRequest, meta RequestMeta) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	event := &models.Event{Status: models.EventStatusOpen}
	applyEvent(event, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, event.Slug, "", "event"); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, writeError(err, "failed to create event")
	}
	s.audit.record(ctx, meta, models.AuditActionCreate, "event", event.ID, nil, event)
	return event, nil
}

// Update modifies an event.
func (s *EventService) Update(ctx context.Context, id string, req EventRequest, meta RequestMeta) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "event")
	}
	before := *event
	applyEvent(event, req)
	if err := claimSlug(ctx, s.repo.ExistsBySlug, event.Slug, id, "event"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, writeError(err, "failed to update event")
	}
	s.audit.record(ctx, meta, models.AuditActionUpdate, "event", id, before, event)
	return event, nil
}

// Delete closes an event.
func (s *EventService) Delete(ctx context.Context, id string, meta RequestMeta) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, "event")
	}
	if err := s.repo.Close(ctx, id); err != nil {
		return writeError(err, "failed to close event")
	}
	s.audit.record(ctx, meta, models.AuditActionDelete, "event", id, event, map[string]string{"status": string(models.EventStatusClosed)})
	return nil
}

// SetRisks replaces the risks that materialised in an event.
func (s *EventService) SetRisks(ctx context.Context, id string, req dto.IDsRequest, meta RequestMeta) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid risks payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, loadError(err, "event")
	}
	ids := uniqueIDs(req.IDs)
	before, err := s.repo.Risks(ctx, id)
	if err != nil {
		return nil, writeError(err, "failed to load event risks")
	}
	if err := s.repo.ReplaceRisks(ctx, id, ids); err != nil {
		return nil, writeError(err, "failed to update event risks")
	}
	s.audit.record(ctx, meta, models.AuditActionLink, "event_risks", id, before, ids)
	return ids, nil
}

func applyEvent(event *models.Event, req EventRequest) {
	event.CompanyID = req.CompanyID
	event.Name = strings.TrimSpace(req.Name)
	event.Slug = slugify(event.Name)
	event.Description = strings.TrimSpace(req.Description)
	event.OccurredAt = req.OccurredAt.UTC()
	event.LossAmount = req.LossAmount
	if req.Status != "" {
		event.Status = models.EventStatus(req.Status)
	}
}
