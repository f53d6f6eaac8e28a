package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBookingCreateRejectsTakenVenueDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	venueID := uint64(4)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(venueID, "2027-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	date := time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC)
	id, err := repo.Create(context.Background(), 8, &venueID, nil, date, nil)
	if err != ErrSlotTaken {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
	if id != 0 {
		t.Fatalf("id = %d, want 0", id)
	}
	// The transaction rolled back before the insert, so nothing was
	// written for the losing couple.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRejectsTakenVendorDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	vendorID := uint64(9)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(vendorID, "2027-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	date := time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(context.Background(), 8, nil, &vendorID, date, nil)
	if err != ErrSlotTaken {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateInsertsPendingWhenFree(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	venueID, vendorID := uint64(4), uint64(9)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(venueID, "2027-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(vendorID, "2027-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(uint64(8), venueID, vendorID, "2027-06-12", "pending", nil).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectCommit()

	date := time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC)
	id, err := repo.Create(context.Background(), 8, &venueID, &vendorID, date, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 41 {
		t.Fatalf("id = %d, want 41", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
