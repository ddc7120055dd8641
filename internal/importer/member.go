package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/jackc/pgx/v5"
)

// importMember inserts one member row plus its contact, address and
// employment children. A registration number already present in the members
// table, including one inserted earlier in the same transaction, makes the
// row a skip.
func importMember(ctx context.Context, db database.DBTX, rec MemberRecord) (rowResult, error) {
	if rec.RegistrationNumber.Valid {
		var existingID int64
		err := db.QueryRow(ctx,
			`SELECT id FROM members WHERE registration_number = $1`,
			rec.RegistrationNumber.String,
		).Scan(&existingID)
		if err == nil {
			return rowResult{status: RowSkipped, reason: "registration number already exists"}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return rowResult{}, fmt.Errorf("check duplicate registration number: %w", err)
		}
	}

	var memberID int64
	err := db.QueryRow(ctx,
		`INSERT INTO members (
			registration_number, first_name, last_name, birth_date, birth_place,
			birth_province, tax_code, gender, nationality, registration_date,
			approval_date, member_type, member_status, volunteer_status,
			worker_type, education_level, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		rec.RegistrationNumber, rec.FirstName, rec.LastName, rec.BirthDate,
		rec.BirthPlace, rec.BirthProvince, rec.TaxCode, rec.Gender,
		rec.Nationality, rec.RegistrationDate, rec.ApprovalDate, rec.MemberType,
		rec.MemberStatus, rec.VolunteerStatus, rec.WorkerType,
		rec.EducationLevel, rec.Notes,
	).Scan(&memberID)
	if err != nil {
		return rowResult{}, fmt.Errorf("insert member: %w", err)
	}

	for _, c := range rec.Contacts {
		if c.Value == "" {
			continue
		}
		_, err := db.Exec(ctx,
			`INSERT INTO member_contacts (member_id, contact_type, value) VALUES ($1, $2, $3)`,
			memberID, c.Type, c.Value,
		)
		if err != nil {
			return rowResult{}, fmt.Errorf("insert member contact %s: %w", c.Type, err)
		}
	}

	if err := insertMemberAddress(ctx, db, memberID, "residenza", rec.Residenza); err != nil {
		return rowResult{}, err
	}
	if err := insertMemberAddress(ctx, db, memberID, "domicilio", rec.Domicilio); err != nil {
		return rowResult{}, err
	}

	if rec.Employment.EmployerName != "" {
		_, err := db.Exec(ctx,
			`INSERT INTO member_employment (member_id, employer_name, employer_address, employer_city, employer_phone)
			 VALUES ($1, $2, $3, $4, $5)`,
			memberID, rec.Employment.EmployerName,
			TextOrNull(rec.Employment.EmployerAddress),
			TextOrNull(rec.Employment.EmployerCity),
			TextOrNull(rec.Employment.EmployerPhone),
		)
		if err != nil {
			return rowResult{}, fmt.Errorf("insert member employment: %w", err)
		}
	}

	return rowResult{status: RowImported, id: memberID}, nil
}

func insertMemberAddress(ctx context.Context, db database.DBTX, memberID int64, addrType string, addr Address) error {
	if addr.Empty() {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO member_addresses (member_id, address_type, street, number, city, province, cap)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		memberID, addrType,
		TextOrNull(addr.Street), TextOrNull(addr.Number), TextOrNull(addr.City),
		TextOrNull(addr.Province), TextOrNull(addr.Cap),
	)
	if err != nil {
		return fmt.Errorf("insert member %s address: %w", addrType, err)
	}
	return nil
}
