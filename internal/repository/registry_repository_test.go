package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const registrySelect = "SELECT id, couple_profile_id, created_at FROM wedding_registries"

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistryRepo(db)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(registrySelect).
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "couple_profile_id", "created_at"}).
				AddRow(5, 9, created))
	}

	first, err := repo.GetOrCreate(context.Background(), 9)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := repo.GetOrCreate(context.Background(), 9)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first.ID != 5 || second.ID != first.ID {
		t.Fatalf("ids = %d, %d; want the same registry both times", first.ID, second.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegistryGetOrCreateSurvivesCreateRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistryRepo(db)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(registrySelect).
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO wedding_registries").
		WithArgs(uint64(9)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '9' for key 'couple_profile_id'"))
	mock.ExpectQuery(registrySelect).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "couple_profile_id", "created_at"}).
			AddRow(5, 9, created))

	reg, err := repo.GetOrCreate(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if reg.ID != 5 {
		t.Fatalf("reg.ID = %d, want the concurrent winner's row", reg.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPurchasedRejectsSecondClaim(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistryRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT purchased FROM registry_items").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"purchased"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.MarkPurchased(context.Background(), 3, "Aunt May", nil)
	if err != ErrAlreadyPurchased {
		t.Fatalf("err = %v, want ErrAlreadyPurchased", err)
	}
	// No UPDATE expectation was registered: the losing guest must not
	// touch the first purchaser's metadata.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPurchasedClaimsOpenItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistryRepo(db)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT purchased FROM registry_items").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"purchased"}).AddRow(false))
	mock.ExpectExec("UPDATE registry_items").
		WithArgs("Aunt May", nil, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, registry_id, name").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "registry_id", "name", "description", "price", "quantity",
			"category", "brand", "url", "image", "priority", "purchased",
			"purchased_by", "purchase_date", "purchase_message", "created_at", "updated_at",
		}).AddRow(3, 5, "Stand mixer", nil, 499.0, 1, nil, nil, nil, nil,
			"MEDIUM", true, "Aunt May", now, nil, now, now))
	mock.ExpectCommit()

	it, err := repo.MarkPurchased(context.Background(), 3, "Aunt May", nil)
	if err != nil {
		t.Fatalf("MarkPurchased: %v", err)
	}
	if !it.Purchased {
		t.Fatal("item not marked purchased")
	}
	if it.PurchasedBy == nil || *it.PurchasedBy != "Aunt May" {
		t.Fatalf("PurchasedBy = %v, want Aunt May", it.PurchasedBy)
	}
	if it.PurchaseDate == nil {
		t.Fatal("PurchaseDate not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
