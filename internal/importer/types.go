// Package importer implements the CSV import pipeline: encoding detection,
// CSV reading with transcoding, header-to-field mapping suggestions, per-kind
// row normalization, and transactional multi-table insertion with per-row
// outcome accounting. This package has no HTTP dependencies and is driven by
// the web layer.
package importer

import (
	"encoding/json"
	"errors"
	"time"
)

// Kind identifies one of the supported import targets.
type Kind string

const (
	KindMembers        Kind = "soci"
	KindJuniorMembers  Kind = "cadetti"
	KindVehicles       Kind = "mezzi"
	KindWarehouseItems Kind = "attrezzature"
)

// Kinds lists all supported import kinds.
var Kinds = []Kind{KindMembers, KindJuniorMembers, KindVehicles, KindWarehouseItems}

// Valid reports whether k is a supported import kind.
func (k Kind) Valid() bool {
	switch k {
	case KindMembers, KindJuniorMembers, KindVehicles, KindWarehouseItems:
		return true
	}
	return false
}

// RunStatus is the lifecycle state of an import run. in_progress is the only
// non-terminal state.
type RunStatus string

const (
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunPartial    RunStatus = "partial"
	RunFailed     RunStatus = "failed"
)

// RowStatus classifies the outcome of a single data row.
type RowStatus string

const (
	RowImported RowStatus = "imported"
	RowSkipped  RowStatus = "skipped"
	RowError    RowStatus = "error"
)

// RowOutcome records what happened to one CSV data row. Row is the 1-based
// line number in the file (the header is line 1, the first data row line 2).
type RowOutcome struct {
	Row    int       `json:"row"`
	Status RowStatus `json:"status"`
	ID     int64     `json:"id,omitempty"`
	Reason string    `json:"reason,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Request describes one import run.
type Request struct {
	// FilePath is the CSV file to import.
	FilePath string

	// FileName is the display name recorded in the audit log.
	// Defaults to the base name of FilePath.
	FileName string

	// Kind selects the entity importer.
	Kind Kind

	// Mapping maps CSV headers to canonical field keys. Headers missing from
	// the map, or mapped to the empty string, are ignored.
	Mapping map[string]string

	// Delimiter is the CSV field separator. Zero means comma.
	Delimiter rune

	// UserID is the acting user recorded as created_by. Zero means unknown.
	UserID int64
}

// Result is the outcome of a completed import run.
type Result struct {
	Success  bool         `json:"success"`
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	Errors   int          `json:"errors"`
	Details  []RowOutcome `json:"details"`
	LogID    int64        `json:"log_id"`
}

// ImportLog is one persisted audit record from the import_logs table.
type ImportLog struct {
	ID            int64      `json:"id"`
	FileName      string     `json:"fileName"`
	ImportType    Kind       `json:"importType"`
	Status        RunStatus  `json:"status"`
	FileEncoding  string     `json:"fileEncoding,omitempty"`
	TotalRows     int        `json:"totalRows"`
	ImportedRows  int        `json:"importedRows"`
	SkippedRows   int        `json:"skippedRows"`
	ErrorRows     int        `json:"errorRows"`
	ImportDetails json.RawMessage `json:"importDetails,omitempty"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedBy     int64      `json:"createdBy,omitempty"`
}

// Setup errors abort a run before any transaction is opened.
var (
	// ErrEmptyFile means the CSV contained no data rows after the header.
	ErrEmptyFile = errors.New("csv file has no data rows")

	// ErrBlankHeader means every header cell was blank.
	ErrBlankHeader = errors.New("csv header row is blank")

	// ErrUnknownKind means the requested import type is not supported.
	ErrUnknownKind = errors.New("unknown import type")
)

// rowResult is what an entity importer reports for one row. Rows that fail
// validation or insertion surface as errors instead.
type rowResult struct {
	status RowStatus // RowImported or RowSkipped
	id     int64
	reason string
}
