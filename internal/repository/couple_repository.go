package repository

import (
	"context"
	"database/sql"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// CoupleRepo persists couple profiles.
type CoupleRepo struct{ DB *sql.DB }

func NewCoupleRepo(db *sql.DB) *CoupleRepo { return &CoupleRepo{DB: db} }

const coupleCols = `cp.id, cp.user_id, cp.wedding_date, cp.budget, cp.guest_count,
	cp.theme, cp.venue, cp.notes, cp.created_at, cp.updated_at, u.name`

func scanCouple(row interface{ Scan(...any) error }) (model.CoupleProfile, error) {
	var cp model.CoupleProfile
	err := row.Scan(&cp.ID, &cp.UserID, &cp.WeddingDate, &cp.Budget, &cp.GuestCount,
		&cp.Theme, &cp.Venue, &cp.Notes, &cp.CreatedAt, &cp.UpdatedAt, &cp.UserName)
	return cp, err
}

// GetByUserID fetches the profile belonging to a user account.
func (r *CoupleRepo) GetByUserID(ctx context.Context, userID uint64) (model.CoupleProfile, error) {
	return scanCouple(r.DB.QueryRowContext(ctx,
		`SELECT `+coupleCols+` FROM couple_profiles cp JOIN users u ON u.id = cp.user_id
		 WHERE cp.user_id = ? LIMIT 1`, userID))
}

// GetByID fetches a profile by its own id.
func (r *CoupleRepo) GetByID(ctx context.Context, id uint64) (model.CoupleProfile, error) {
	return scanCouple(r.DB.QueryRowContext(ctx,
		`SELECT `+coupleCols+` FROM couple_profiles cp JOIN users u ON u.id = cp.user_id
		 WHERE cp.id = ? LIMIT 1`, id))
}

// CoupleUpdate carries the updatable profile fields. Nil leaves a field
// unchanged; to clear a field callers pass a pointer to the zero value.
type CoupleUpdate struct {
	WeddingDate *string
	Budget      *float64
	GuestCount  *int
	Theme       *string
	Venue       *string
	Notes       *string
}

// Update applies the provided fields to the profile. The wedding date
// arrives as a YYYY-MM-DD string and is stored as a DATE column.
func (r *CoupleRepo) Update(ctx context.Context, id uint64, upd CoupleUpdate) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if upd.WeddingDate != nil {
		add("wedding_date", *upd.WeddingDate)
	}
	if upd.Budget != nil {
		add("budget", *upd.Budget)
	}
	if upd.GuestCount != nil {
		add("guest_count", *upd.GuestCount)
	}
	if upd.Theme != nil {
		add("theme", *upd.Theme)
	}
	if upd.Venue != nil {
		add("venue", *upd.Venue)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx, "UPDATE couple_profiles SET "+set+" WHERE id=?", args...)
	return err
}
