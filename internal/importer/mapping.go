package importer

import "strings"

// synonym pairs a legacy CSV header (as exported by the old single-table
// systems) with the canonical field key it feeds. Order matters: the first
// entry that matches a header wins.
type synonym struct {
	key   string
	field string
}

var memberSynonyms = []synonym{
	{"matricola", "registration_number"},
	{"nome", "first_name"},
	{"cognome", "last_name"},
	{"data_nascita", "birth_date"},
	{"luogo_nascita", "birth_place"},
	{"provincia_nascita", "birth_province"},
	{"codice_fiscale", "tax_code"},
	{"sesso", "gender"},
	{"nazionalita", "nationality"},
	{"data_iscrizione", "registration_date"},
	{"data_approvazione", "approval_date"},
	{"tipo_socio", "member_type"},
	{"stato_socio", "member_status"},
	{"stato_volontario", "volunteer_status"},
	{"tipo_lavoratore", "worker_type"},
	{"titolo_studio", "education_level"},
	{"email", "contact_email"},
	{"telefono", "contact_telefono"},
	{"cellulare", "contact_cellulare"},
	{"pec", "contact_pec"},
	{"via_residenza", "residenza_street"},
	{"numero_residenza", "residenza_number"},
	{"citta_residenza", "residenza_city"},
	{"provincia_residenza", "residenza_province"},
	{"cap_residenza", "residenza_cap"},
	{"via_domicilio", "domicilio_street"},
	{"numero_domicilio", "domicilio_number"},
	{"citta_domicilio", "domicilio_city"},
	{"provincia_domicilio", "domicilio_province"},
	{"cap_domicilio", "domicilio_cap"},
	{"datore_lavoro", "employer_name"},
	{"indirizzo_lavoro", "employer_address"},
	{"citta_lavoro", "employer_city"},
	{"telefono_lavoro", "employer_phone"},
	{"note", "notes"},
}

var juniorSynonyms = []synonym{
	{"matricola", "registration_number"},
	{"nome", "first_name"},
	{"cognome", "last_name"},
	{"data_nascita", "birth_date"},
	{"luogo_nascita", "birth_place"},
	{"provincia_nascita", "birth_province"},
	{"codice_fiscale", "tax_code"},
	{"sesso", "gender"},
	{"nazionalita", "nationality"},
	{"data_iscrizione", "registration_date"},
	{"data_approvazione", "approval_date"},
	{"stato_socio", "member_status"},
	{"email", "contact_email"},
	{"telefono", "contact_telefono"},
	{"cellulare", "contact_cellulare"},
	{"via_residenza", "residenza_street"},
	{"numero_residenza", "residenza_number"},
	{"citta_residenza", "residenza_city"},
	{"provincia_residenza", "residenza_province"},
	{"cap_residenza", "residenza_cap"},
	{"nome_padre", "guardian_padre_first_name"},
	{"cognome_padre", "guardian_padre_last_name"},
	{"cf_padre", "guardian_padre_tax_code"},
	{"telefono_padre", "guardian_padre_phone"},
	{"email_padre", "guardian_padre_email"},
	{"nome_madre", "guardian_madre_first_name"},
	{"cognome_madre", "guardian_madre_last_name"},
	{"cf_madre", "guardian_madre_tax_code"},
	{"telefono_madre", "guardian_madre_phone"},
	{"email_madre", "guardian_madre_email"},
	{"note", "notes"},
}

var vehicleSynonyms = []synonym{
	{"tipo", "vehicle_type"},
	{"nome", "name"},
	{"targa", "license_plate"},
	{"marca", "brand"},
	{"modello", "model"},
	{"anno", "year"},
	{"numero_serie", "serial_number"},
	{"stato", "status"},
	{"scadenza_assicurazione", "insurance_expiry"},
	{"scadenza_revisione", "inspection_expiry"},
	{"note", "notes"},
}

var warehouseSynonyms = []synonym{
	{"codice", "code"},
	{"nome", "name"},
	{"categoria", "category"},
	{"descrizione", "description"},
	{"quantita", "quantity"},
	{"quantita_minima", "minimum_quantity"},
	{"unita", "unit"},
	{"posizione", "location"},
	{"stato", "status"},
}

func synonymsFor(kind Kind) []synonym {
	switch kind {
	case KindMembers:
		return memberSynonyms
	case KindJuniorMembers:
		return juniorSynonyms
	case KindVehicles:
		return vehicleSynonyms
	case KindWarehouseItems:
		return warehouseSynonyms
	}
	return nil
}

// normalizeHeader lowercases a header and strips spaces, underscores and
// hyphens so that "Data Nascita", "data_nascita" and "DATA-NASCITA" compare
// equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// SuggestMapping proposes a header-to-field mapping for the given kind.
//
// Each header is normalized and matched against the kind's synonym list in
// three passes of decreasing strength: exact equality, header contains a
// synonym key, synonym key contains the header. Within a pass the first
// matching entry in declaration order wins. Exact matches run first so that
// "Cognome" resolves to the surname key instead of matching "nome" by
// containment. Headers with no match map to the empty string; blank headers
// never match. The result is advisory: the caller may edit it before running
// the import.
func SuggestMapping(headers []string, kind Kind) map[string]string {
	syns := synonymsFor(kind)
	out := make(map[string]string, len(headers))

	for _, header := range headers {
		out[header] = matchHeader(normalizeHeader(header), syns)
	}

	return out
}

func matchHeader(nh string, syns []synonym) string {
	if nh == "" {
		return ""
	}

	for _, syn := range syns {
		if nh == normalizeHeader(syn.key) {
			return syn.field
		}
	}
	for _, syn := range syns {
		if strings.Contains(nh, normalizeHeader(syn.key)) {
			return syn.field
		}
	}
	for _, syn := range syns {
		if strings.Contains(normalizeHeader(syn.key), nh) {
			return syn.field
		}
	}
	return ""
}
