package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/jackc/pgx/v5"
)

// importWarehouseItem inserts one warehouse item row, skipping when the item
// code is already taken.
func importWarehouseItem(ctx context.Context, db database.DBTX, rec WarehouseItemRecord) (rowResult, error) {
	if rec.Code.Valid {
		var existingID int64
		err := db.QueryRow(ctx,
			`SELECT id FROM warehouse_items WHERE code = $1`,
			rec.Code.String,
		).Scan(&existingID)
		if err == nil {
			return rowResult{status: RowSkipped, reason: "item code already exists"}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return rowResult{}, fmt.Errorf("check duplicate item code: %w", err)
		}
	}

	var itemID int64
	err := db.QueryRow(ctx,
		`INSERT INTO warehouse_items (
			code, name, category, description, quantity, minimum_quantity,
			unit, location, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rec.Code, rec.Name, rec.Category, rec.Description, rec.Quantity,
		rec.MinimumQuantity, rec.Unit, rec.Location, rec.Status,
	).Scan(&itemID)
	if err != nil {
		return rowResult{}, fmt.Errorf("insert warehouse item: %w", err)
	}

	return rowResult{status: RowImported, id: itemID}, nil
}
