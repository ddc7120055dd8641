package importer

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Record is a single data row keyed by catalog field name, built by applying
// the column mapping to the raw cells.
type Record map[string]string

// BuildRecord projects a raw CSV row through the header-to-field mapping.
// Headers mapped to "" are ignored; cells beyond the row's length read as
// empty, so ragged rows never panic.
func BuildRecord(headers []string, row []string, mapping map[string]string) Record {
	rec := make(Record, len(mapping))
	for i, header := range headers {
		field := mapping[header]
		if field == "" {
			continue
		}
		var cell string
		if i < len(row) {
			cell = CleanCell(row[i])
		}
		rec[field] = cell
	}
	return rec
}

// Get returns the trimmed value for field, or "" when unmapped.
func (r Record) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Address groups the street-level fields fanned out to an address row.
type Address struct {
	Street   string
	Number   string
	City     string
	Province string
	Cap      string
}

// Empty reports whether the address carries nothing worth persisting. An
// address row is written only when at least a street or a city is present.
func (a Address) Empty() bool {
	return a.Street == "" && a.City == ""
}

// Guardian is a parent of a junior member. A guardian row is written when a
// first or last name is present.
type Guardian struct {
	Type      string
	FirstName string
	LastName  string
	TaxCode   string
	Phone     string
	Email     string
}

func (g Guardian) Empty() bool {
	return g.FirstName == "" && g.LastName == ""
}

// Employment holds the optional employer block of a member row.
type Employment struct {
	EmployerName    string
	EmployerAddress string
	EmployerCity    string
	EmployerPhone   string
}

// contact is one contact-table row derived from a record. Empty values
// produce no row.
type contact struct {
	Type  string
	Value string
}

// MemberRecord is a normalized members row plus its child-table fan-out.
type MemberRecord struct {
	RegistrationNumber pgtype.Text
	FirstName          string
	LastName           string
	BirthDate          pgtype.Date
	BirthPlace         pgtype.Text
	BirthProvince      pgtype.Text
	TaxCode            pgtype.Text
	Gender             pgtype.Text
	Nationality        string
	RegistrationDate   pgtype.Date
	ApprovalDate       pgtype.Date
	MemberType         string
	MemberStatus       string
	VolunteerStatus    string
	WorkerType         pgtype.Text
	EducationLevel     pgtype.Text
	Notes              pgtype.Text

	Contacts   []contact
	Residenza  Address
	Domicilio  Address
	Employment Employment
}

// NewMemberRecord normalizes a mapped row into member fields and the
// contact, address and employment fan-out.
func NewMemberRecord(rec Record) MemberRecord {
	nationality := rec.Get("nationality")
	if nationality == "" {
		nationality = "Italiana"
	}

	return MemberRecord{
		RegistrationNumber: TextOrNull(rec.Get("registration_number")),
		FirstName:          rec.Get("first_name"),
		LastName:           rec.Get("last_name"),
		BirthDate:          ParseDate(rec.Get("birth_date")),
		BirthPlace:         TextOrNull(rec.Get("birth_place")),
		BirthProvince:      TextOrNull(rec.Get("birth_province")),
		TaxCode:            TextOrNull(rec.Get("tax_code")),
		Gender:             ParseGender(rec.Get("gender")),
		Nationality:        nationality,
		RegistrationDate:   ParseDate(rec.Get("registration_date")),
		ApprovalDate:       ParseDate(rec.Get("approval_date")),
		MemberType:         ParseMemberType(rec.Get("member_type")),
		MemberStatus:       ParseMemberStatus(rec.Get("member_status")),
		VolunteerStatus:    ParseVolunteerStatus(rec.Get("volunteer_status")),
		WorkerType:         ParseWorkerType(rec.Get("worker_type")),
		EducationLevel:     ParseEducationLevel(rec.Get("education_level")),
		Notes:              TextOrNull(rec.Get("notes")),

		Contacts: []contact{
			{"email", rec.Get("contact_email")},
			{"pec", rec.Get("contact_pec")},
			{"telefono_fisso", rec.Get("contact_telefono")},
			{"cellulare", rec.Get("contact_cellulare")},
		},
		Residenza:  addressFromRecord(rec, "residenza"),
		Domicilio:  addressFromRecord(rec, "domicilio"),
		Employment: Employment{
			EmployerName:    rec.Get("employer_name"),
			EmployerAddress: rec.Get("employer_address"),
			EmployerCity:    rec.Get("employer_city"),
			EmployerPhone:   rec.Get("employer_phone"),
		},
	}
}

// JuniorMemberRecord is a normalized junior_members row plus its fan-out.
// Juniors carry no PEC contact, no domicile and no employment; guardians
// take their place.
type JuniorMemberRecord struct {
	RegistrationNumber pgtype.Text
	FirstName          string
	LastName           string
	BirthDate          pgtype.Date
	BirthPlace         pgtype.Text
	BirthProvince      pgtype.Text
	TaxCode            pgtype.Text
	Gender             pgtype.Text
	Nationality        string
	RegistrationDate   pgtype.Date
	ApprovalDate       pgtype.Date
	MemberStatus       string
	Notes              pgtype.Text

	Contacts  []contact
	Residenza Address
	Guardians []Guardian
}

func NewJuniorMemberRecord(rec Record) JuniorMemberRecord {
	nationality := rec.Get("nationality")
	if nationality == "" {
		nationality = "Italiana"
	}

	return JuniorMemberRecord{
		RegistrationNumber: TextOrNull(rec.Get("registration_number")),
		FirstName:          rec.Get("first_name"),
		LastName:           rec.Get("last_name"),
		BirthDate:          ParseDate(rec.Get("birth_date")),
		BirthPlace:         TextOrNull(rec.Get("birth_place")),
		BirthProvince:      TextOrNull(rec.Get("birth_province")),
		TaxCode:            TextOrNull(rec.Get("tax_code")),
		Gender:             ParseGender(rec.Get("gender")),
		Nationality:        nationality,
		RegistrationDate:   ParseDate(rec.Get("registration_date")),
		ApprovalDate:       ParseDate(rec.Get("approval_date")),
		MemberStatus:       ParseMemberStatus(rec.Get("member_status")),
		Notes:              TextOrNull(rec.Get("notes")),

		Contacts: []contact{
			{"email", rec.Get("contact_email")},
			{"telefono_fisso", rec.Get("contact_telefono")},
			{"cellulare", rec.Get("contact_cellulare")},
		},
		Residenza: addressFromRecord(rec, "residenza"),
		Guardians: []Guardian{
			guardianFromRecord(rec, "padre"),
			guardianFromRecord(rec, "madre"),
		},
	}
}

func addressFromRecord(rec Record, addrType string) Address {
	return Address{
		Street:   rec.Get(addrType + "_street"),
		Number:   rec.Get(addrType + "_number"),
		City:     rec.Get(addrType + "_city"),
		Province: rec.Get(addrType + "_province"),
		Cap:      rec.Get(addrType + "_cap"),
	}
}

func guardianFromRecord(rec Record, guardianType string) Guardian {
	prefix := "guardian_" + guardianType + "_"
	return Guardian{
		Type:      guardianType,
		FirstName: rec.Get(prefix + "first_name"),
		LastName:  rec.Get(prefix + "last_name"),
		TaxCode:   rec.Get(prefix + "tax_code"),
		Phone:     rec.Get(prefix + "phone"),
		Email:     rec.Get(prefix + "email"),
	}
}

// VehicleRecord is a normalized vehicles row.
type VehicleRecord struct {
	VehicleType      string
	Name             string
	LicensePlate     pgtype.Text
	Brand            pgtype.Text
	Model            pgtype.Text
	Year             pgtype.Int4
	SerialNumber     pgtype.Text
	Status           string
	InsuranceExpiry  pgtype.Date
	InspectionExpiry pgtype.Date
	Notes            pgtype.Text
}

func NewVehicleRecord(rec Record) VehicleRecord {
	return VehicleRecord{
		VehicleType:      ParseVehicleType(rec.Get("vehicle_type")),
		Name:             rec.Get("name"),
		LicensePlate:     TextOrNull(rec.Get("license_plate")),
		Brand:            TextOrNull(rec.Get("brand")),
		Model:            TextOrNull(rec.Get("model")),
		Year:             ParseIntOrNull(rec.Get("year")),
		SerialNumber:     TextOrNull(rec.Get("serial_number")),
		Status:           ParseVehicleStatus(rec.Get("status")),
		InsuranceExpiry:  ParseDate(rec.Get("insurance_expiry")),
		InspectionExpiry: ParseDate(rec.Get("inspection_expiry")),
		Notes:            TextOrNull(rec.Get("notes")),
	}
}

// WarehouseItemRecord is a normalized warehouse_items row.
type WarehouseItemRecord struct {
	Code            pgtype.Text
	Name            string
	Category        pgtype.Text
	Description     pgtype.Text
	Quantity        int32
	MinimumQuantity int32
	Unit            pgtype.Text
	Location        pgtype.Text
	Status          string
}

func NewWarehouseItemRecord(rec Record) WarehouseItemRecord {
	return WarehouseItemRecord{
		Code:            TextOrNull(rec.Get("code")),
		Name:            rec.Get("name"),
		Category:        TextOrNull(rec.Get("category")),
		Description:     TextOrNull(rec.Get("description")),
		Quantity:        ParseIntDefault(rec.Get("quantity"), 0),
		MinimumQuantity: ParseIntDefault(rec.Get("minimum_quantity"), 0),
		Unit:            TextOrNull(rec.Get("unit")),
		Location:        TextOrNull(rec.Get("location")),
		Status:          ParseWarehouseStatus(rec.Get("status")),
	}
}
