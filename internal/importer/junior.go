package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/jackc/pgx/v5"
)

// importJuniorMember inserts one junior member row plus contacts, the
// residence address and up to two guardian rows. Duplicate detection works
// like the adult importer: same registration number, same skip.
func importJuniorMember(ctx context.Context, db database.DBTX, rec JuniorMemberRecord) (rowResult, error) {
	if rec.RegistrationNumber.Valid {
		var existingID int64
		err := db.QueryRow(ctx,
			`SELECT id FROM junior_members WHERE registration_number = $1`,
			rec.RegistrationNumber.String,
		).Scan(&existingID)
		if err == nil {
			return rowResult{status: RowSkipped, reason: "registration number already exists"}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return rowResult{}, fmt.Errorf("check duplicate registration number: %w", err)
		}
	}

	var juniorID int64
	err := db.QueryRow(ctx,
		`INSERT INTO junior_members (
			registration_number, first_name, last_name, birth_date, birth_place,
			birth_province, tax_code, gender, nationality, registration_date,
			approval_date, member_status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		rec.RegistrationNumber, rec.FirstName, rec.LastName, rec.BirthDate,
		rec.BirthPlace, rec.BirthProvince, rec.TaxCode, rec.Gender,
		rec.Nationality, rec.RegistrationDate, rec.ApprovalDate,
		rec.MemberStatus, rec.Notes,
	).Scan(&juniorID)
	if err != nil {
		return rowResult{}, fmt.Errorf("insert junior member: %w", err)
	}

	for _, c := range rec.Contacts {
		if c.Value == "" {
			continue
		}
		_, err := db.Exec(ctx,
			`INSERT INTO junior_member_contacts (junior_member_id, contact_type, value) VALUES ($1, $2, $3)`,
			juniorID, c.Type, c.Value,
		)
		if err != nil {
			return rowResult{}, fmt.Errorf("insert junior member contact %s: %w", c.Type, err)
		}
	}

	if !rec.Residenza.Empty() {
		_, err := db.Exec(ctx,
			`INSERT INTO junior_member_addresses (junior_member_id, address_type, street, number, city, province, cap)
			 VALUES ($1, 'residenza', $2, $3, $4, $5, $6)`,
			juniorID,
			TextOrNull(rec.Residenza.Street), TextOrNull(rec.Residenza.Number),
			TextOrNull(rec.Residenza.City), TextOrNull(rec.Residenza.Province),
			TextOrNull(rec.Residenza.Cap),
		)
		if err != nil {
			return rowResult{}, fmt.Errorf("insert junior member address: %w", err)
		}
	}

	for _, g := range rec.Guardians {
		if g.Empty() {
			continue
		}
		_, err := db.Exec(ctx,
			`INSERT INTO junior_member_guardians (junior_member_id, guardian_type, first_name, last_name, tax_code, phone, email)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			juniorID, g.Type, g.FirstName, g.LastName,
			TextOrNull(g.TaxCode), TextOrNull(g.Phone), TextOrNull(g.Email),
		)
		if err != nil {
			return rowResult{}, fmt.Errorf("insert guardian %s: %w", g.Type, err)
		}
	}

	return rowResult{status: RowImported, id: juniorID}, nil
}
