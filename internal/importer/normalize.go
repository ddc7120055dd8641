package importer

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// dateLayouts are tried in order; the first strict parse wins. Matches the
// formats the legacy exports use: ISO, Italian day-first with slash or dash,
// and slashed ISO.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDate parses a date cell against the supported layouts. Unparseable
// input yields a NULL date, never an error: a bad date must not fail the row.
func ParseDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{}
}

// allDigits reports whether s is non-empty and consists only of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseIntDefault parses a trimmed all-digit cell, returning def otherwise.
func ParseIntDefault(s string, def int32) int32 {
	s = strings.TrimSpace(s)
	if !allDigits(s) {
		return def
	}
	var n int64
	for _, r := range s {
		n = n*10 + int64(r-'0')
		if n > 1<<31-1 {
			return def
		}
	}
	return int32(n)
}

// ParseIntOrNull parses a trimmed all-digit cell, returning NULL otherwise.
func ParseIntOrNull(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if !allDigits(s) {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: ParseIntDefault(s, 0), Valid: true}
}

// ParseGender maps the legacy gender spellings to M/F; anything else is NULL.
func ParseGender(s string) pgtype.Text {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MASCHIO", "MALE", "UOMO":
		return pgtype.Text{String: "M", Valid: true}
	case "F", "FEMMINA", "FEMALE", "DONNA":
		return pgtype.Text{String: "F", Valid: true}
	}
	return pgtype.Text{}
}

// Bounded enumerations with their fallback defaults.
var (
	memberTypes       = []string{"ordinario", "fondatore"}
	memberStatuses    = []string{"attivo", "decaduto", "dimesso", "in_aspettativa", "sospeso", "in_congedo"}
	volunteerStatuses = []string{"operativo", "non_operativo", "in_formazione"}
	workerTypes       = []string{"studente", "dipendente_privato", "dipendente_pubblico", "lavoratore_autonomo", "disoccupato", "pensionato"}
	educationLevels   = []string{"licenza_media", "diploma_maturita", "laurea_triennale", "laurea_magistrale", "dottorato"}
	vehicleTypes      = []string{"veicolo", "natante", "rimorchio"}
	vehicleStatuses   = []string{"operativo", "in_manutenzione", "fuori_servizio", "dismesso"}
	warehouseStatuses = []string{"disponibile", "in_manutenzione", "fuori_servizio"}
)

// parseEnum matches s case- and whitespace-insensitively against allowed,
// falling back to def.
func parseEnum(s string, allowed []string, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range allowed {
		if s == v {
			return v
		}
	}
	return def
}

// parseEnumOrNull is parseEnum with a NULL fallback.
func parseEnumOrNull(s string, allowed []string) pgtype.Text {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range allowed {
		if s == v {
			return pgtype.Text{String: v, Valid: true}
		}
	}
	return pgtype.Text{}
}

func ParseMemberType(s string) string      { return parseEnum(s, memberTypes, "ordinario") }
func ParseMemberStatus(s string) string    { return parseEnum(s, memberStatuses, "attivo") }
func ParseVolunteerStatus(s string) string { return parseEnum(s, volunteerStatuses, "in_formazione") }
func ParseVehicleType(s string) string     { return parseEnum(s, vehicleTypes, "veicolo") }
func ParseVehicleStatus(s string) string   { return parseEnum(s, vehicleStatuses, "operativo") }
func ParseWarehouseStatus(s string) string { return parseEnum(s, warehouseStatuses, "disponibile") }

func ParseWorkerType(s string) pgtype.Text     { return parseEnumOrNull(s, workerTypes) }
func ParseEducationLevel(s string) pgtype.Text { return parseEnumOrNull(s, educationLevels) }

// TextOrNull converts an optional cell to a nullable column value.
func TextOrNull(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
