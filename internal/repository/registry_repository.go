package repository

import (
	"context"
	"database/sql"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// RegistryRepo persists wedding registries and their items. A registry
// is created lazily on first access and never removed.
type RegistryRepo struct{ DB *sql.DB }

func NewRegistryRepo(db *sql.DB) *RegistryRepo { return &RegistryRepo{DB: db} }

const itemCols = `id, registry_id, name, description, price, quantity, category, brand,
	url, image, priority, purchased, purchased_by, purchase_date, purchase_message,
	created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (model.RegistryItem, error) {
	var it model.RegistryItem
	err := row.Scan(&it.ID, &it.RegistryID, &it.Name, &it.Description, &it.Price, &it.Quantity,
		&it.Category, &it.Brand, &it.URL, &it.Image, &it.Priority, &it.Purchased,
		&it.PurchasedBy, &it.PurchaseDate, &it.PurchaseMessage, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// GetOrCreate returns the couple's registry, creating it on first use.
// A concurrent create racing on the unique couple_profile_id key falls
// back to re-reading the winner's row.
func (r *RegistryRepo) GetOrCreate(ctx context.Context, coupleProfileID uint64) (model.WeddingRegistry, error) {
	get := func() (model.WeddingRegistry, error) {
		var reg model.WeddingRegistry
		err := r.DB.QueryRowContext(ctx,
			"SELECT id, couple_profile_id, created_at FROM wedding_registries WHERE couple_profile_id=? LIMIT 1",
			coupleProfileID).Scan(&reg.ID, &reg.CoupleProfileID, &reg.CreatedAt)
		return reg, err
	}

	reg, err := get()
	if err == nil {
		return reg, nil
	}
	if err != sql.ErrNoRows {
		return model.WeddingRegistry{}, err
	}

	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO wedding_registries (couple_profile_id) VALUES (?)", coupleProfileID)
	if err != nil && !isDuplicateKey(err) {
		return model.WeddingRegistry{}, err
	}
	return get()
}

// Get returns the couple's registry without creating one.
func (r *RegistryRepo) Get(ctx context.Context, coupleProfileID uint64) (model.WeddingRegistry, error) {
	var reg model.WeddingRegistry
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, couple_profile_id, created_at FROM wedding_registries WHERE couple_profile_id=? LIMIT 1",
		coupleProfileID).Scan(&reg.ID, &reg.CoupleProfileID, &reg.CreatedAt)
	return reg, err
}

// ListItems returns every item on the registry, high priority first and
// oldest first within a priority.
func (r *RegistryRepo) ListItems(ctx context.Context, registryID uint64) ([]model.RegistryItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+itemCols+` FROM registry_items WHERE registry_id = ?
		 ORDER BY FIELD(priority,'HIGH','MEDIUM','LOW'), created_at ASC`, registryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RegistryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListUnpurchased returns the registry's open items for the public
// guest view, high priority first.
func (r *RegistryRepo) ListUnpurchased(ctx context.Context, registryID uint64) ([]model.RegistryItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+itemCols+` FROM registry_items WHERE registry_id = ? AND purchased = FALSE
		 ORDER BY FIELD(priority,'HIGH','MEDIUM','LOW'), created_at ASC`, registryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RegistryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountItems returns the number of items on the couple's registry, zero
// when no registry exists yet.
func (r *RegistryRepo) CountItems(ctx context.Context, coupleProfileID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registry_items ri
		 JOIN wedding_registries wr ON wr.id = ri.registry_id
		 WHERE wr.couple_profile_id = ?`, coupleProfileID).Scan(&n)
	return n, err
}

// Exists reports whether the couple already has a registry.
func (r *RegistryRepo) Exists(ctx context.Context, coupleProfileID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM wedding_registries WHERE couple_profile_id=? LIMIT 1",
		coupleProfileID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// AddItem inserts an item and returns its id.
func (r *RegistryRepo) AddItem(ctx context.Context, it *model.RegistryItem) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO registry_items (registry_id, name, description, price, quantity,
		 category, brand, url, image, priority)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		it.RegistryID, it.Name, it.Description, it.Price, it.Quantity,
		it.Category, it.Brand, it.URL, it.Image, it.Priority)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetItem fetches an item together with the couple profile that owns
// the registry, for ownership checks.
func (r *RegistryRepo) GetItem(ctx context.Context, itemID uint64) (model.RegistryItem, uint64, error) {
	var (
		it       model.RegistryItem
		coupleID uint64
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT ri.id, ri.registry_id, ri.name, ri.description, ri.price, ri.quantity,
		        ri.category, ri.brand, ri.url, ri.image, ri.priority, ri.purchased,
		        ri.purchased_by, ri.purchase_date, ri.purchase_message, ri.created_at, ri.updated_at,
		        wr.couple_profile_id
		 FROM registry_items ri
		 JOIN wedding_registries wr ON wr.id = ri.registry_id
		 WHERE ri.id = ? LIMIT 1`, itemID).Scan(
		&it.ID, &it.RegistryID, &it.Name, &it.Description, &it.Price, &it.Quantity,
		&it.Category, &it.Brand, &it.URL, &it.Image, &it.Priority, &it.Purchased,
		&it.PurchasedBy, &it.PurchaseDate, &it.PurchaseMessage, &it.CreatedAt, &it.UpdatedAt,
		&coupleID)
	return it, coupleID, err
}

// ItemUpdate carries the updatable item fields; nil leaves a field
// unchanged. Setting Purchased to false clears the purchaser metadata,
// which is how a couple resets a mistaken purchase.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	Brand       *string
	URL         *string
	Image       *string
	Priority    *model.Priority
	Purchased   *bool
}

// UpdateItem applies the provided fields to the item.
func (r *RegistryRepo) UpdateItem(ctx context.Context, itemID uint64, upd ItemUpdate) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Brand != nil {
		add("brand", *upd.Brand)
	}
	if upd.URL != nil {
		add("url", *upd.URL)
	}
	if upd.Image != nil {
		add("image", *upd.Image)
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if upd.Purchased != nil {
		add("purchased", *upd.Purchased)
		if !*upd.Purchased {
			set += ", purchased_by=NULL, purchase_date=NULL, purchase_message=NULL"
		}
	}
	if set == "" {
		return nil
	}
	args = append(args, itemID)
	_, err := r.DB.ExecContext(ctx, "UPDATE registry_items SET "+set+" WHERE id=?", args...)
	return err
}

// DeleteItem removes an item.
func (r *RegistryRepo) DeleteItem(ctx context.Context, itemID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM registry_items WHERE id=?", itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkPurchased claims an open item for a guest. The row is locked
// before the purchased flag is checked so two guests cannot claim the
// same item; the loser gets ErrAlreadyPurchased. The updated item is
// returned on success.
func (r *RegistryRepo) MarkPurchased(ctx context.Context, itemID uint64, purchasedBy string, message *string) (model.RegistryItem, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.RegistryItem{}, err
	}
	defer tx.Rollback()

	var purchased bool
	err = tx.QueryRowContext(ctx,
		"SELECT purchased FROM registry_items WHERE id=? FOR UPDATE", itemID).Scan(&purchased)
	if err != nil {
		return model.RegistryItem{}, err
	}
	if purchased {
		return model.RegistryItem{}, ErrAlreadyPurchased
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE registry_items
		 SET purchased=TRUE, purchased_by=?, purchase_date=NOW(), purchase_message=?
		 WHERE id=?`, purchasedBy, message, itemID)
	if err != nil {
		return model.RegistryItem{}, err
	}

	it, err := scanItem(tx.QueryRowContext(ctx,
		"SELECT "+itemCols+" FROM registry_items WHERE id=?", itemID))
	if err != nil {
		return model.RegistryItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.RegistryItem{}, err
	}
	return it, nil
}
