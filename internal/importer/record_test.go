package importer

import "testing"

func TestBuildRecord(t *testing.T) {
	headers := []string{"Matricola", "Nome", "Ignorata", "Note"}
	mapping := map[string]string{
		"Matricola": "registration_number",
		"Nome":      "first_name",
		"Note":      "notes",
	}

	t.Run("maps and trims cells", func(t *testing.T) {
		rec := BuildRecord(headers, []string{" 100 ", "Mario", "x", " ok "}, mapping)
		if rec["registration_number"] != "100" {
			t.Errorf("registration_number = %q", rec["registration_number"])
		}
		if rec["first_name"] != "Mario" {
			t.Errorf("first_name = %q", rec["first_name"])
		}
		if _, ok := rec["Ignorata"]; ok {
			t.Error("unmapped header leaked into record")
		}
	})

	t.Run("short row reads empty", func(t *testing.T) {
		rec := BuildRecord(headers, []string{"100"}, mapping)
		if rec["first_name"] != "" || rec["notes"] != "" {
			t.Errorf("missing cells = %q, %q; want empty", rec["first_name"], rec["notes"])
		}
	})
}

func TestNewMemberRecord(t *testing.T) {
	rec := Record{
		"registration_number": "100",
		"first_name":          "Mario",
		"last_name":           "Rossi",
		"birth_date":          "01/03/1990",
		"gender":              "maschio",
		"member_type":         "sconosciuto",
		"worker_type":         "impiegato statale",
		"contact_email":       "mario@example.org",
		"residenza_street":    "Via Roma",
		"residenza_city":      "Milano",
		"employer_name":       "ACME Srl",
	}

	m := NewMemberRecord(rec)

	if !m.RegistrationNumber.Valid || m.RegistrationNumber.String != "100" {
		t.Errorf("RegistrationNumber = %+v", m.RegistrationNumber)
	}
	if !m.BirthDate.Valid || m.BirthDate.Time.Year() != 1990 {
		t.Errorf("BirthDate = %+v", m.BirthDate)
	}
	if m.Gender.String != "M" {
		t.Errorf("Gender = %+v", m.Gender)
	}
	if m.Nationality != "Italiana" {
		t.Errorf("Nationality default = %q", m.Nationality)
	}
	if m.MemberType != "ordinario" {
		t.Errorf("MemberType fallback = %q", m.MemberType)
	}
	if m.WorkerType.Valid {
		t.Errorf("invalid worker type should be NULL, got %+v", m.WorkerType)
	}
	if m.Residenza.Empty() {
		t.Error("Residenza should not be empty")
	}
	if !m.Domicilio.Empty() {
		t.Error("Domicilio should be empty")
	}
	if m.Employment.EmployerName != "ACME Srl" {
		t.Errorf("EmployerName = %q", m.Employment.EmployerName)
	}

	var email string
	for _, c := range m.Contacts {
		if c.Type == "email" {
			email = c.Value
		}
	}
	if email != "mario@example.org" {
		t.Errorf("email contact = %q", email)
	}
}

func TestNewJuniorMemberRecordGuardians(t *testing.T) {
	rec := Record{
		"first_name":                "Luca",
		"last_name":                 "Verdi",
		"guardian_padre_first_name": "Paolo",
		"guardian_padre_last_name":  "Verdi",
		"guardian_madre_phone":      "3331234567",
	}

	j := NewJuniorMemberRecord(rec)

	if len(j.Guardians) != 2 {
		t.Fatalf("guardians = %d, want 2", len(j.Guardians))
	}
	padre, madre := j.Guardians[0], j.Guardians[1]
	if padre.Type != "padre" || padre.Empty() {
		t.Errorf("padre = %+v, want populated", padre)
	}
	// A phone alone does not make a guardian row: a name is required.
	if madre.Type != "madre" || !madre.Empty() {
		t.Errorf("madre = %+v, want empty", madre)
	}
}

func TestNewVehicleRecord(t *testing.T) {
	v := NewVehicleRecord(Record{
		"name":          "Ambulanza 1",
		"license_plate": "AB123CD",
		"vehicle_type":  "camion",
		"year":          "2019",
		"status":        "IN_MANUTENZIONE",
	})

	if v.VehicleType != "veicolo" {
		t.Errorf("VehicleType fallback = %q", v.VehicleType)
	}
	if !v.Year.Valid || v.Year.Int32 != 2019 {
		t.Errorf("Year = %+v", v.Year)
	}
	if v.Status != "in_manutenzione" {
		t.Errorf("Status = %q", v.Status)
	}
	if v.Brand.Valid {
		t.Errorf("Brand should be NULL, got %+v", v.Brand)
	}
}

func TestNewWarehouseItemRecord(t *testing.T) {
	w := NewWarehouseItemRecord(Record{
		"code":     "X001",
		"name":     "Barella",
		"quantity": "cinque",
	})

	if w.Quantity != 0 {
		t.Errorf("Quantity fallback = %d, want 0", w.Quantity)
	}
	if w.MinimumQuantity != 0 {
		t.Errorf("MinimumQuantity = %d, want 0", w.MinimumQuantity)
	}
	if w.Status != "disponibile" {
		t.Errorf("Status fallback = %q", w.Status)
	}
}
