package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/booking"
	"github.com/growbro/backend/internal/domain/shared"
)

func newMockReservationRepository(t *testing.T) (*GormReservationRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormReservationRepository(gormDB), mock, mockDB
}

func reservationRows(id, orgID, resourceID uuid.UUID, status booking.ReservationStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "org_id", "resource_id", "customer_name", "party_size",
		"slot_start", "slot_end", "status", "check_in_token", "expires_at",
	}).AddRow(id, orgID, resourceID, "Dana", 2, now, now.Add(time.Hour), string(status), "tok-abc", now.Add(30*time.Minute))
}

func TestGormReservationRepository_FindByToken(t *testing.T) {
	t.Run("finds reservation by token", func(t *testing.T) {
		repo, mock, mockDB := newMockReservationRepository(t)
		defer mockDB.Close()

		reservationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "reservations" WHERE check_in_token = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("tok-abc", 1).
			WillReturnRows(reservationRows(reservationID, uuid.New(), uuid.New(), booking.ReservationStatusConfirmed))

		reservation, err := repo.FindByToken(context.Background(), "tok-abc")

		assert.NoError(t, err)
		require.NotNil(t, reservation)
		assert.Equal(t, reservationID, reservation.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown token", func(t *testing.T) {
		repo, mock, mockDB := newMockReservationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "reservations" WHERE check_in_token = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nope", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		reservation, err := repo.FindByToken(context.Background(), "nope")

		assert.Nil(t, reservation)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReservationRepository_FindOverlapping(t *testing.T) {
	repo, mock, mockDB := newMockReservationRepository(t)
	defer mockDB.Close()

	orgID := uuid.New()
	resourceID := uuid.New()
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "reservations" WHERE org_id = \$1 AND resource_id = \$2 AND status IN \(\$3,\$4,\$5\) AND slot_start < \$6 AND slot_end > \$7`).
		WithArgs(orgID, resourceID,
			string(booking.ReservationStatusPendingPayment),
			string(booking.ReservationStatusConfirmed),
			string(booking.ReservationStatusCheckedIn),
			end, start).
		WillReturnRows(reservationRows(uuid.New(), orgID, resourceID, booking.ReservationStatusConfirmed))

	reservations, err := repo.FindOverlapping(context.Background(), orgID, resourceID, start, end)

	assert.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReservationRepository_FindExpiredPending(t *testing.T) {
	repo, mock, mockDB := newMockReservationRepository(t)
	defer mockDB.Close()

	before := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "reservations" WHERE status = \$1 AND expires_at < \$2 ORDER BY expires_at ASC LIMIT .*`).
		WithArgs(string(booking.ReservationStatusPendingPayment), before, 50).
		WillReturnRows(reservationRows(uuid.New(), uuid.New(), uuid.New(), booking.ReservationStatusPendingPayment))

	reservations, err := repo.FindExpiredPending(context.Background(), before, 50)

	assert.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
