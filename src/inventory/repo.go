package inventory

import (
	"database/sql"
	"fmt"
	"time"
)

// Repo persists inventory items in sqlite.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// List returns all items, most recently updated first.
func (r *Repo) List() ([]Item, error) {
	rows, err := r.db.Query(
		`SELECT id, name, category, quantity, min_quantity, unit_price, supplier, last_updated
		 FROM inventory_items ORDER BY last_updated DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.MinQuantity, &it.UnitPrice, &it.Supplier, &it.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		it.derive()
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get loads one item by ID.
func (r *Repo) Get(id int64) (*Item, error) {
	var it Item
	err := r.db.QueryRow(
		`SELECT id, name, category, quantity, min_quantity, unit_price, supplier, last_updated
		 FROM inventory_items WHERE id = ?`, id,
	).Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.MinQuantity, &it.UnitPrice, &it.Supplier, &it.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("loading inventory item %d: %w", id, err)
	}
	it.derive()
	return &it, nil
}

// Create inserts a new item and returns it with derived fields filled.
func (r *Repo) Create(it Item) (*Item, error) {
	it.LastUpdated = time.Now().UTC()
	res, err := r.db.Exec(
		`INSERT INTO inventory_items (name, category, quantity, min_quantity, unit_price, supplier, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.Name, it.Category, it.Quantity, it.MinQuantity, it.UnitPrice, it.Supplier, it.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("inserting inventory item: %w", err)
	}
	it.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new inventory item id: %w", err)
	}
	it.derive()
	return &it, nil
}

// Update replaces a stored item's fields.
func (r *Repo) Update(it Item) (*Item, error) {
	it.LastUpdated = time.Now().UTC()
	res, err := r.db.Exec(
		`UPDATE inventory_items
		 SET name = ?, category = ?, quantity = ?, min_quantity = ?, unit_price = ?, supplier = ?, last_updated = ?
		 WHERE id = ?`,
		it.Name, it.Category, it.Quantity, it.MinQuantity, it.UnitPrice, it.Supplier, it.LastUpdated, it.ID)
	if err != nil {
		return nil, fmt.Errorf("updating inventory item %d: %w", it.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update of inventory item %d: %w", it.ID, err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	it.derive()
	return &it, nil
}

// Delete removes an item.
func (r *Repo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of inventory item %d: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
