package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventease/internal/domain"
)

const rsvpColumns = "id, event_id, attendee_name, attendee_email, status, notes, created_at, updated_at"

// rsvpEmailConstraint is the unique index on (event_id, attendee_email).
// A violation means the attendee already RSVP'd for the event.
const rsvpEmailConstraint = "rsvps_event_id_attendee_email_key"

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

func scanRSVP(row interface{ Scan(...any) error }) (*domain.RSVP, error) {
	rsvp := &domain.RSVP{}
	var notesNull sql.NullString
	err := row.Scan(
		&rsvp.ID, &rsvp.EventID, &rsvp.AttendeeName, &rsvp.AttendeeEmail,
		&rsvp.Status, &notesNull, &rsvp.CreatedAt, &rsvp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notesNull.Valid {
		rsvp.Notes = &notesNull.String
	}
	return rsvp, nil
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, attendee_name, attendee_email, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rsvp.EventID, rsvp.AttendeeName, rsvp.AttendeeEmail, rsvp.Status,
		rsvp.Notes, rsvp.CreatedAt, rsvp.UpdatedAt,
	).Scan(&rsvp.ID)
	if err != nil {
		if isUniqueViolation(err, rsvpEmailConstraint) {
			return domain.ErrAlreadyRegistered
		}
		if isUndefinedTable(err) {
			return domain.ErrStorageNotProvisioned
		}
		return err
	}
	return nil
}

// CreateWithinCapacity inserts the RSVP only while the event's confirmed
// count is below maxAttendees. The guard runs server-side in the same
// statement, so two concurrent submissions cannot both pass it.
func (r *rsvpRepository) CreateWithinCapacity(ctx context.Context, rsvp *domain.RSVP, maxAttendees int) error {
	query := `
		INSERT INTO rsvps (event_id, attendee_name, attendee_email, status, notes, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE (SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND status = 'confirmed') < $8
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rsvp.EventID, rsvp.AttendeeName, rsvp.AttendeeEmail, rsvp.Status,
		rsvp.Notes, rsvp.CreatedAt, rsvp.UpdatedAt, maxAttendees,
	).Scan(&rsvp.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventFull
		}
		if isUniqueViolation(err, rsvpEmailConstraint) {
			return domain.ErrAlreadyRegistered
		}
		if isUndefinedTable(err) {
			return domain.ErrStorageNotProvisioned
		}
		return err
	}
	return nil
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) FindByEmail(ctx context.Context, eventID, email string) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE event_id = $1 AND attendee_email = $2`
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, eventID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) ListForEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		if isUndefinedTable(err) {
			return []*domain.RSVP{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

func (r *rsvpRepository) UpdateStatus(ctx context.Context, id string, status domain.RSVPStatus) (*domain.RSVP, error) {
	query := `
		UPDATE rsvps SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + rsvpColumns
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUndefinedTable(err) {
			return nil, domain.ErrStorageNotProvisioned
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rsvps WHERE id = $1`
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

func (r *rsvpRepository) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'declined')
		FROM rsvps
		WHERE event_id = $1
	`
	stats := &domain.EventStats{}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(
		&stats.Total, &stats.Confirmed, &stats.Pending, &stats.Declined,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return &domain.EventStats{}, nil
		}
		return nil, err
	}
	return stats, nil
}
