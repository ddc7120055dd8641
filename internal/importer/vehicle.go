package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/jackc/pgx/v5"
)

// importVehicle inserts one vehicle row. The license plate is the natural
// key: an existing plate, in the table or earlier in the same file, makes
// the row a skip.
func importVehicle(ctx context.Context, db database.DBTX, rec VehicleRecord) (rowResult, error) {
	if rec.LicensePlate.Valid {
		var existingID int64
		err := db.QueryRow(ctx,
			`SELECT id FROM vehicles WHERE license_plate = $1`,
			rec.LicensePlate.String,
		).Scan(&existingID)
		if err == nil {
			return rowResult{status: RowSkipped, reason: "license plate already exists"}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return rowResult{}, fmt.Errorf("check duplicate license plate: %w", err)
		}
	}

	var vehicleID int64
	err := db.QueryRow(ctx,
		`INSERT INTO vehicles (
			vehicle_type, name, license_plate, brand, model, year,
			serial_number, status, insurance_expiry, inspection_expiry, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		rec.VehicleType, rec.Name, rec.LicensePlate, rec.Brand, rec.Model,
		rec.Year, rec.SerialNumber, rec.Status, rec.InsuranceExpiry,
		rec.InspectionExpiry, rec.Notes,
	).Scan(&vehicleID)
	if err != nil {
		return rowResult{}, fmt.Errorf("insert vehicle: %w", err)
	}

	return rowResult{status: RowImported, id: vehicleID}, nil
}
