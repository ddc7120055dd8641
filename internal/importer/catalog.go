package importer

// CatalogField describes one importable field: the table it lands in, its
// canonical key (the value a column mapping points at), and a display label.
type CatalogField struct {
	Table string `json:"table"`
	Field string `json:"field"`
	Label string `json:"label"`
}

// Destination tables.
const (
	tableMembers              = "members"
	tableMemberContacts       = "member_contacts"
	tableMemberAddresses      = "member_addresses"
	tableMemberEmployment     = "member_employment"
	tableJuniorMembers        = "junior_members"
	tableJuniorContacts       = "junior_member_contacts"
	tableJuniorAddresses      = "junior_member_addresses"
	tableJuniorGuardians      = "junior_member_guardians"
	tableVehicles             = "vehicles"
	tableWarehouseItems       = "warehouse_items"
)

var memberCatalog = []CatalogField{
	{tableMembers, "registration_number", "Matricola"},
	{tableMembers, "first_name", "Nome"},
	{tableMembers, "last_name", "Cognome"},
	{tableMembers, "birth_date", "Data di Nascita"},
	{tableMembers, "birth_place", "Luogo di Nascita"},
	{tableMembers, "birth_province", "Provincia di Nascita"},
	{tableMembers, "tax_code", "Codice Fiscale"},
	{tableMembers, "gender", "Sesso"},
	{tableMembers, "nationality", "Nazionalità"},
	{tableMembers, "registration_date", "Data Iscrizione"},
	{tableMembers, "approval_date", "Data Approvazione"},
	{tableMembers, "member_type", "Tipo Socio"},
	{tableMembers, "member_status", "Stato Socio"},
	{tableMembers, "volunteer_status", "Stato Volontario"},
	{tableMembers, "worker_type", "Tipo di Lavoratore"},
	{tableMembers, "education_level", "Titolo di Studio"},
	{tableMembers, "notes", "Note"},
	{tableMemberContacts, "contact_email", "Email"},
	{tableMemberContacts, "contact_pec", "PEC"},
	{tableMemberContacts, "contact_telefono", "Telefono Fisso"},
	{tableMemberContacts, "contact_cellulare", "Cellulare"},
	{tableMemberAddresses, "residenza_street", "Via Residenza"},
	{tableMemberAddresses, "residenza_number", "Civico Residenza"},
	{tableMemberAddresses, "residenza_city", "Città Residenza"},
	{tableMemberAddresses, "residenza_province", "Provincia Residenza"},
	{tableMemberAddresses, "residenza_cap", "CAP Residenza"},
	{tableMemberAddresses, "domicilio_street", "Via Domicilio"},
	{tableMemberAddresses, "domicilio_number", "Civico Domicilio"},
	{tableMemberAddresses, "domicilio_city", "Città Domicilio"},
	{tableMemberAddresses, "domicilio_province", "Provincia Domicilio"},
	{tableMemberAddresses, "domicilio_cap", "CAP Domicilio"},
	{tableMemberEmployment, "employer_name", "Datore di Lavoro"},
	{tableMemberEmployment, "employer_address", "Indirizzo Lavoro"},
	{tableMemberEmployment, "employer_city", "Città Lavoro"},
	{tableMemberEmployment, "employer_phone", "Telefono Lavoro"},
}

var juniorCatalog = []CatalogField{
	{tableJuniorMembers, "registration_number", "Matricola"},
	{tableJuniorMembers, "first_name", "Nome"},
	{tableJuniorMembers, "last_name", "Cognome"},
	{tableJuniorMembers, "birth_date", "Data di Nascita"},
	{tableJuniorMembers, "birth_place", "Luogo di Nascita"},
	{tableJuniorMembers, "birth_province", "Provincia di Nascita"},
	{tableJuniorMembers, "tax_code", "Codice Fiscale"},
	{tableJuniorMembers, "gender", "Sesso"},
	{tableJuniorMembers, "nationality", "Nazionalità"},
	{tableJuniorMembers, "registration_date", "Data Iscrizione"},
	{tableJuniorMembers, "approval_date", "Data Approvazione"},
	{tableJuniorMembers, "member_status", "Stato Socio"},
	{tableJuniorMembers, "notes", "Note"},
	{tableJuniorContacts, "contact_email", "Email"},
	{tableJuniorContacts, "contact_telefono", "Telefono Fisso"},
	{tableJuniorContacts, "contact_cellulare", "Cellulare"},
	{tableJuniorAddresses, "residenza_street", "Via Residenza"},
	{tableJuniorAddresses, "residenza_number", "Civico Residenza"},
	{tableJuniorAddresses, "residenza_city", "Città Residenza"},
	{tableJuniorAddresses, "residenza_province", "Provincia Residenza"},
	{tableJuniorAddresses, "residenza_cap", "CAP Residenza"},
	{tableJuniorGuardians, "guardian_padre_first_name", "Nome Padre"},
	{tableJuniorGuardians, "guardian_padre_last_name", "Cognome Padre"},
	{tableJuniorGuardians, "guardian_padre_tax_code", "Codice Fiscale Padre"},
	{tableJuniorGuardians, "guardian_padre_phone", "Telefono Padre"},
	{tableJuniorGuardians, "guardian_padre_email", "Email Padre"},
	{tableJuniorGuardians, "guardian_madre_first_name", "Nome Madre"},
	{tableJuniorGuardians, "guardian_madre_last_name", "Cognome Madre"},
	{tableJuniorGuardians, "guardian_madre_tax_code", "Codice Fiscale Madre"},
	{tableJuniorGuardians, "guardian_madre_phone", "Telefono Madre"},
	{tableJuniorGuardians, "guardian_madre_email", "Email Madre"},
}

var vehicleCatalog = []CatalogField{
	{tableVehicles, "vehicle_type", "Tipo"},
	{tableVehicles, "name", "Nome"},
	{tableVehicles, "license_plate", "Targa"},
	{tableVehicles, "brand", "Marca"},
	{tableVehicles, "model", "Modello"},
	{tableVehicles, "year", "Anno"},
	{tableVehicles, "serial_number", "Numero di Serie"},
	{tableVehicles, "status", "Stato"},
	{tableVehicles, "insurance_expiry", "Scadenza Assicurazione"},
	{tableVehicles, "inspection_expiry", "Scadenza Revisione"},
	{tableVehicles, "notes", "Note"},
}

var warehouseCatalog = []CatalogField{
	{tableWarehouseItems, "code", "Codice"},
	{tableWarehouseItems, "name", "Nome"},
	{tableWarehouseItems, "category", "Categoria"},
	{tableWarehouseItems, "description", "Descrizione"},
	{tableWarehouseItems, "quantity", "Quantità"},
	{tableWarehouseItems, "minimum_quantity", "Quantità Minima"},
	{tableWarehouseItems, "unit", "Unità"},
	{tableWarehouseItems, "location", "Posizione"},
	{tableWarehouseItems, "status", "Stato"},
}

// FieldCatalog returns the ordered list of importable fields for a kind.
// Unknown kinds get an empty list.
func FieldCatalog(kind Kind) []CatalogField {
	switch kind {
	case KindMembers:
		return memberCatalog
	case KindJuniorMembers:
		return juniorCatalog
	case KindVehicles:
		return vehicleCatalog
	case KindWarehouseItems:
		return warehouseCatalog
	}
	return nil
}

// CatalogByTable groups a kind's catalog as table -> field -> label, the
// shape the mapping UI consumes.
func CatalogByTable(kind Kind) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, f := range FieldCatalog(kind) {
		t, ok := out[f.Table]
		if !ok {
			t = make(map[string]string)
			out[f.Table] = t
		}
		t[f.Field] = f.Label
	}
	return out
}
