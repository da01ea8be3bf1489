package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventease/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func rsvpRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "attendee_name", "attendee_email", "status", "notes", "created_at", "updated_at",
	})
}

func TestRSVPRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rsvp-1"))
			},
			wantID: "rsvp-1",
		},
		{
			name: "duplicate email maps to already registered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "rsvps_event_id_attendee_email_key"})
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name: "table missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WillReturnError(&pq.Error{Code: "42P01"})
			},
			wantErr: domain.ErrStorageNotProvisioned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			rsvp := &domain.RSVP{
				EventID:       "ev-1",
				AttendeeName:  "Ada Lovelace",
				AttendeeEmail: "ada@example.com",
				Status:        domain.RSVPStatusConfirmed,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			err = NewRSVPRepository(db).Create(ctx, rsvp)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, rsvp.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRSVPRepository_CreateWithinCapacity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newRSVP := func() *domain.RSVP {
		return &domain.RSVP{
			EventID:       "ev-1",
			AttendeeName:  "Ada Lovelace",
			AttendeeEmail: "ada@example.com",
			Status:        domain.RSVPStatusConfirmed,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	t.Run("inserts while under capacity", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO rsvps[\s\S]+WHERE \(SELECT COUNT\(\*\) FROM rsvps WHERE event_id = \$1 AND status = 'confirmed'\) < \$8`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rsvp-1"))

		rsvp := newRSVP()
		require.NoError(t, NewRSVPRepository(db).CreateWithinCapacity(ctx, rsvp, 10))
		require.Equal(t, "rsvp-1", rsvp.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row inserted means event full", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO rsvps`).
			WillReturnError(sql.ErrNoRows)

		err = NewRSVPRepository(db).CreateWithinCapacity(ctx, newRSVP(), 10)
		require.True(t, errors.Is(err, domain.ErrEventFull))
	})

	t.Run("duplicate still maps to already registered", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO rsvps`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "rsvps_event_id_attendee_email_key"})

		err = NewRSVPRepository(db).CreateWithinCapacity(ctx, newRSVP(), 10)
		require.True(t, errors.Is(err, domain.ErrAlreadyRegistered))
	})
}

func TestRSVPRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM rsvps WHERE event_id = \$1 AND attendee_email = \$2`).
			WithArgs("ev-1", "ada@example.com").
			WillReturnRows(rsvpRows().
				AddRow("rsvp-1", "ev-1", "Ada Lovelace", "ada@example.com", "confirmed", nil, now, now))

		got, err := NewRSVPRepository(db).FindByEmail(ctx, "ev-1", "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "rsvp-1", got.ID)
		require.Nil(t, got.Notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM rsvps WHERE event_id = \$1 AND attendee_email = \$2`).
			WithArgs("ev-1", "none@example.com").
			WillReturnError(sql.ErrNoRows)

		got, err := NewRSVPRepository(db).FindByEmail(ctx, "ev-1", "none@example.com")
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
	})
}

func TestRSVPRepository_ListForEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	notes := "vegetarian"

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM rsvps\s+WHERE event_id = \$1\s+ORDER BY created_at DESC`).
			WithArgs("ev-1").
			WillReturnRows(rsvpRows().
				AddRow("rsvp-2", "ev-1", "Grace Hopper", "grace@example.com", "confirmed", notes, now.Add(time.Hour), now.Add(time.Hour)).
				AddRow("rsvp-1", "ev-1", "Ada Lovelace", "ada@example.com", "pending", nil, now, now))

		got, err := NewRSVPRepository(db).ListForEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "rsvp-2", got[0].ID)
		require.NotNil(t, got[0].Notes)
		require.Equal(t, notes, *got[0].Notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("table missing returns empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM rsvps`).
			WithArgs("ev-1").
			WillReturnError(&pq.Error{Code: "42P01"})

		got, err := NewRSVPRepository(db).ListForEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestRSVPRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE rsvps SET status = \$1, updated_at = NOW\(\)`).
			WithArgs(domain.RSVPStatusDeclined, "rsvp-1").
			WillReturnRows(rsvpRows().
				AddRow("rsvp-1", "ev-1", "Ada Lovelace", "ada@example.com", "declined", nil, now, now))

		got, err := NewRSVPRepository(db).UpdateStatus(ctx, "rsvp-1", domain.RSVPStatusDeclined)
		require.NoError(t, err)
		require.Equal(t, domain.RSVPStatusDeclined, got.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE rsvps SET status = \$1`).
			WillReturnError(sql.ErrNoRows)

		got, err := NewRSVPRepository(db).UpdateStatus(ctx, "rsvp-missing", domain.RSVPStatusDeclined)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
	})
}

func TestRSVPRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM rsvps WHERE id = \$1`).
			WithArgs("rsvp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewRSVPRepository(db).Delete(ctx, "rsvp-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM rsvps WHERE id = \$1`).
			WithArgs("rsvp-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewRSVPRepository(db).Delete(ctx, "rsvp-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestRSVPRepository_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\),`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"total", "confirmed", "pending", "declined"}).
				AddRow(10, 6, 3, 1))

		got, err := NewRSVPRepository(db).Stats(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, &domain.EventStats{Total: 10, Confirmed: 6, Pending: 3, Declined: 1}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("table missing returns zeroed stats", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\),`).
			WithArgs("ev-1").
			WillReturnError(&pq.Error{Code: "42P01"})

		got, err := NewRSVPRepository(db).Stats(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, &domain.EventStats{}, got)
	})
}
