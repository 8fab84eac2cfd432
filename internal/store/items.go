package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/reclaimit/reclaimit/internal/model"
)

// ErrNoDocument is returned when an update targets a missing record.
var ErrNoDocument = errors.New("no document to update")

// CreateLostItem writes a new report document. The item must already carry
// its id, owner, status and timestamps.
func CreateLostItem(ctx context.Context, db *sql.DB, item *model.LostItem) error {
	fields, err := json.Marshal(item.Fields)
	if err != nil {
		return fmt.Errorf("encoding report fields: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO lost_items (id, owner_id, owner_email, status, fields, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.OwnerEmail, item.Status, string(fields), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating lost item: %w", err)
	}
	return nil
}

// GetLostItem returns one report by id, or nil if there is none.
func GetLostItem(ctx context.Context, db *sql.DB, id string) (*model.LostItem, error) {
	item := &model.LostItem{}
	var fields string
	var photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, owner_id, owner_email, status, fields, photo_mime, created_at, updated_at
		 FROM lost_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.OwnerID, &item.OwnerEmail, &item.Status, &fields, &photoMime, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lost item: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &item.Fields); err != nil {
		return nil, fmt.Errorf("decoding report fields: %w", err)
	}
	item.PhotoMime = photoMime.String
	return item, nil
}

// ListLostItems returns every report, newest first.
func ListLostItems(ctx context.Context, db *sql.DB) ([]model.LostItem, error) {
	return queryLostItems(ctx, db,
		`SELECT id, owner_id, owner_email, status, fields, photo_mime, created_at, updated_at
		 FROM lost_items ORDER BY created_at DESC`,
	)
}

// ListLostItemsByOwner returns every report whose owner uid matches.
func ListLostItemsByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]model.LostItem, error) {
	return queryLostItems(ctx, db,
		`SELECT id, owner_id, owner_email, status, fields, photo_mime, created_at, updated_at
		 FROM lost_items WHERE owner_id = ? ORDER BY created_at DESC`, ownerID,
	)
}

func queryLostItems(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lost items: %w", err)
	}
	defer rows.Close()

	var items []model.LostItem
	for rows.Next() {
		var item model.LostItem
		var fields string
		var photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.OwnerEmail, &item.Status, &fields, &photoMime, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning lost item: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &item.Fields); err != nil {
			return nil, fmt.Errorf("decoding report fields: %w", err)
		}
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateLostItem merges the given fields into the report at id and refreshes
// the update timestamp. The new timestamp never moves behind the stored one.
// Returns the updated record, or ErrNoDocument if the report is missing.
func UpdateLostItem(ctx context.Context, db *sql.DB, id string, patch map[string]any, updatedAt string) (*model.LostItem, error) {
	item, err := GetLostItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNoDocument
	}

	if item.Fields == nil {
		item.Fields = map[string]any{}
	}
	for k, v := range patch {
		item.Fields[k] = v
	}

	item.UpdatedAt = laterStamp(updatedAt, item.UpdatedAt)

	fields, err := json.Marshal(item.Fields)
	if err != nil {
		return nil, fmt.Errorf("encoding report fields: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE lost_items SET fields = ?, updated_at = ? WHERE id = ?`,
		string(fields), item.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating lost item: %w", err)
	}
	return item, nil
}

// laterStamp returns next if it is strictly after prev, otherwise a stamp
// one nanosecond past prev. Unparseable stamps fall back to next.
func laterStamp(next, prev string) string {
	nt, err := time.Parse(time.RFC3339Nano, next)
	if err != nil {
		return next
	}
	pt, err := time.Parse(time.RFC3339Nano, prev)
	if err != nil {
		return next
	}
	if nt.After(pt) {
		return next
	}
	return pt.Add(time.Nanosecond).UTC().Format(time.RFC3339Nano)
}

// DeleteLostItem removes a report. Deleting a missing report is not an error.
func DeleteLostItem(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM lost_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lost item: %w", err)
	}
	return nil
}

// SetLostItemPhoto stores a report's photo and refreshes the update timestamp.
func SetLostItemPhoto(ctx context.Context, db *sql.DB, id string, photo []byte, mime, updatedAt string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE lost_items SET photo = ?, photo_mime = ?, updated_at = ? WHERE id = ?`,
		photo, mime, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("setting lost item photo: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoDocument
	}
	return nil
}

// GetLostItemPhoto returns a report's photo bytes and MIME type.
func GetLostItemPhoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM lost_items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting lost item photo: %w", err)
	}
	return photo, mime.String, nil
}
