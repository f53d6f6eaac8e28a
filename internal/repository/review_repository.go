package repository

import (
	"context"
	"database/sql"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// ReviewRepo reads vendor reviews. Reviews are written by an external
// channel, so only queries are exposed here.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// ListByVendor returns the vendor's reviews, newest first. A limit of
// zero returns all of them.
func (r *ReviewRepo) ListByVendor(ctx context.Context, vendorID uint64, limit int) ([]model.Review, error) {
	q := "SELECT id, vendor_id, rating, comment, reviewer_name, created_at FROM reviews WHERE vendor_id=? ORDER BY created_at DESC"
	args := []any{vendorID}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.VendorID, &rv.Rating, &rv.Comment, &rv.ReviewerName, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
