package importer

import (
	"context"
	"testing"
)

// ============================================================================
// Entity Importer Tests
// ============================================================================

func TestImportMember(t *testing.T) {
	t.Run("inserts core row and fan-out", func(t *testing.T) {
		db := newFakeDB()
		rec := NewMemberRecord(Record{
			"registration_number": "100",
			"first_name":          "Mario",
			"last_name":           "Rossi",
			"contact_email":       "mario@example.org",
			"contact_cellulare":   "3331234567",
			"residenza_street":    "Via Roma",
			"residenza_city":      "Milano",
			"employer_name":       "ACME Srl",
		})

		res, err := importMember(context.Background(), db, rec)
		if err != nil {
			t.Fatalf("importMember: %v", err)
		}
		if res.status != RowImported || res.id == 0 {
			t.Fatalf("result = %+v, want imported with id", res)
		}

		if got := db.countExec("INSERT INTO member_contacts"); got != 2 {
			t.Errorf("contact inserts = %d, want 2", got)
		}
		if got := db.countExec("INSERT INTO member_addresses"); got != 1 {
			t.Errorf("address inserts = %d, want 1 (no domicile)", got)
		}
		if got := db.countExec("INSERT INTO member_employment"); got != 1 {
			t.Errorf("employment inserts = %d, want 1", got)
		}
	})

	t.Run("existing registration number skips", func(t *testing.T) {
		db := newFakeDB()
		db.keys["members/100"] = 7

		res, err := importMember(context.Background(), db, NewMemberRecord(Record{
			"registration_number": "100",
			"first_name":          "Mario",
		}))
		if err != nil {
			t.Fatalf("importMember: %v", err)
		}
		if res.status != RowSkipped || res.reason == "" {
			t.Errorf("result = %+v, want skip with reason", res)
		}
		if got := db.countExec("INSERT INTO"); got != 0 {
			t.Errorf("skip executed %d inserts, want 0", got)
		}
	})

	t.Run("missing registration number never skips", func(t *testing.T) {
		db := newFakeDB()

		res, err := importMember(context.Background(), db, NewMemberRecord(Record{
			"first_name": "Anna",
			"last_name":  "Bianchi",
		}))
		if err != nil {
			t.Fatalf("importMember: %v", err)
		}
		if res.status != RowImported {
			t.Errorf("result = %+v, want imported", res)
		}
	})
}

func TestImportJuniorMember(t *testing.T) {
	db := newFakeDB()
	rec := NewJuniorMemberRecord(Record{
		"registration_number":       "C01",
		"first_name":                "Luca",
		"last_name":                 "Verdi",
		"guardian_padre_first_name": "Paolo",
		"guardian_padre_last_name":  "Verdi",
		"residenza_street":          "Via Milano",
		"residenza_city":            "Torino",
	})

	res, err := importJuniorMember(context.Background(), db, rec)
	if err != nil {
		t.Fatalf("importJuniorMember: %v", err)
	}
	if res.status != RowImported {
		t.Fatalf("result = %+v, want imported", res)
	}
	if got := db.countExec("INSERT INTO junior_member_guardians"); got != 1 {
		t.Errorf("guardian inserts = %d, want 1 (madre has no name)", got)
	}
	if got := db.countExec("INSERT INTO junior_member_addresses"); got != 1 {
		t.Errorf("address inserts = %d, want 1", got)
	}
}

func TestImportVehicle(t *testing.T) {
	db := newFakeDB()

	res, err := importVehicle(context.Background(), db, NewVehicleRecord(Record{
		"name":          "Ambulanza 1",
		"license_plate": "AB123CD",
	}))
	if err != nil {
		t.Fatalf("importVehicle: %v", err)
	}
	if res.status != RowImported {
		t.Fatalf("result = %+v, want imported", res)
	}

	// Same plate again must skip.
	res, err = importVehicle(context.Background(), db, NewVehicleRecord(Record{
		"name":          "Ambulanza 2",
		"license_plate": "AB123CD",
	}))
	if err != nil {
		t.Fatalf("importVehicle: %v", err)
	}
	if res.status != RowSkipped {
		t.Errorf("duplicate plate result = %+v, want skipped", res)
	}
}

func TestImportWarehouseItem(t *testing.T) {
	db := newFakeDB()
	db.keys["warehouse_items/X001"] = 3

	res, err := importWarehouseItem(context.Background(), db, NewWarehouseItemRecord(Record{
		"code": "X001",
		"name": "Barella",
	}))
	if err != nil {
		t.Fatalf("importWarehouseItem: %v", err)
	}
	if res.status != RowSkipped {
		t.Errorf("result = %+v, want skipped", res)
	}

	res, err = importWarehouseItem(context.Background(), db, NewWarehouseItemRecord(Record{
		"code": "X002",
		"name": "Coperta",
	}))
	if err != nil {
		t.Fatalf("importWarehouseItem: %v", err)
	}
	if res.status != RowImported {
		t.Errorf("result = %+v, want imported", res)
	}
}
