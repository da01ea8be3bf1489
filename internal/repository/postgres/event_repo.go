package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventease/internal/domain"
)

const eventColumns = "id, title, description, event_date, end_date, location, max_attendees, is_public, status, created_by, created_at, updated_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull sql.NullString
	var endNull sql.NullTime
	var maxNull sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &e.EventDate, &endNull, &locNull,
		&maxNull, &e.IsPublic, &e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if endNull.Valid {
		e.EndDate = &endNull.Time
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	if maxNull.Valid {
		max := int(maxNull.Int64)
		e.MaxAttendees = &max
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, event_date, end_date, location, max_attendees, is_public, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.EventDate, e.EndDate, e.Location,
		e.MaxAttendees, e.IsPublic, e.Status, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrStorageNotProvisioned
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		// A missing table reads the same as a missing row.
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	args := []any{}
	if ownerID != "" {
		query = `SELECT ` + eventColumns + ` FROM events WHERE created_by = $1 ORDER BY created_at DESC`
		args = append(args, ownerID)
	}
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_public = TRUE AND status = 'published'
		ORDER BY event_date ASC
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return []*domain.Event{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if in.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *in.Title)
		n++
	}
	if in.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *in.Description)
		n++
	}
	if in.EventDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_date = $%d", n))
		args = append(args, *in.EventDate)
		n++
	}
	if in.EndDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *in.EndDate)
		n++
	}
	if in.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *in.Location)
		n++
	}
	if in.MaxAttendees != nil {
		setClauses = append(setClauses, fmt.Sprintf("max_attendees = $%d", n))
		args = append(args, *in.MaxAttendees)
		n++
	}
	if in.IsPublic != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_public = $%d", n))
		args = append(args, *in.IsPublic)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUndefinedTable(err) {
			return nil, domain.ErrStorageNotProvisioned
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	query := `
		UPDATE events SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUndefinedTable(err) {
			return nil, domain.ErrStorageNotProvisioned
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrStorageNotProvisioned
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
