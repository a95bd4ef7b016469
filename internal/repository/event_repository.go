package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const eventColumns = "id, company_id, name, slug, description, occurred_at, loss_amount, status, created_at, updated_at"

var eventSorts = sortSpec{
	allowed:  map[string]bool{"name": true, "occurred_at": true, "loss_amount": true, "status": true, "created_at": true},
	fallback: "occurred_at",
}

// EventRepository persists risk events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the filter with the total count.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	where := &whereBuilder{}
	if filter.CompanyID != "" {
		where.add("company_id = $%d", filter.CompanyID)
	}
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	where.search(filter.Search, "name", "slug")

	var events []models.Event
	total, err := listPage(ctx, r.db, &events, eventColumns, "events", where, filter.ListOptions, eventSorts)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// FindByID returns an event by identifier.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = $1"
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

// ExistsBySlug reports whether another event already uses slug.
func (r *EventRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, "events", slug, excludeID)
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	const query = `INSERT INTO events (id, company_id, name, slug, description, occurred_at, loss_amount, status, created_at, updated_at)
VALUES (:id, :company_id, :name, :slug, :description, :occurred_at, :loss_amount, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", TranslatePQError(err))
	}
	return nil
}

// Update saves mutable event fields.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET name = :name, slug = :slug, description = :description, occurred_at = :occurred_at, loss_amount = :loss_amount, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", TranslatePQError(err))
	}
	return nil
}

// Close marks an event as closed, which is how events are retired.
func (r *EventRepository) Close(ctx context.Context, id string) error {
	const query = `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.EventStatusClosed, time.Now().UTC()); err != nil {
		return fmt.Errorf("close event: %w", err)
	}
	return nil
}

type eventRiskRow struct {
	EventID string `db:"event_id"`
	RiskID  string `db:"risk_id"`
}

// Risks lists the risk IDs that materialised in an event.
func (r *EventRepository) Risks(ctx context.Context, eventID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT risk_id FROM event_risks WHERE event_id = $1 ORDER BY risk_id`, eventID); err != nil {
		return nil, fmt.Errorf("list event risks: %w", err)
	}
	return ids, nil
}

// ReplaceRisks swaps the risks linked to an event.
func (r *EventRepository) ReplaceRisks(ctx context.Context, eventID string, riskIDs []string) error {
	rows := make([]eventRiskRow, len(riskIDs))
	for i, id := range riskIDs {
		rows[i] = eventRiskRow{EventID: eventID, RiskID: id}
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceSet(ctx, tx,
			`DELETE FROM event_risks WHERE event_id = $1`, eventID,
			`INSERT INTO event_risks (event_id, risk_id) VALUES (:event_id, :risk_id)`, rows)
	})
	if err != nil {
		return fmt.Errorf("replace event risks: %w", err)
	}
	return nil
}
