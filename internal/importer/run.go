package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/easyvol/easyvol/internal/logging"
)

// Service runs CSV imports and reads their audit trail.
type Service struct {
	db database.Pool
}

func NewService(db database.Pool) *Service {
	return &Service{db: db}
}

// Import runs one import end to end: parse the file, open a transaction,
// process every data row under its own savepoint, commit, and finalize the
// audit record. Row-level failures roll back only that row's savepoint; the
// rows already processed stay in the transaction. Only setup failures
// (unreadable file, empty file, blank header) or transaction-level failures
// abort the whole run.
func (s *Service) Import(ctx context.Context, req Request) (*Result, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if req.FileName == "" {
		req.FileName = filepath.Base(req.FilePath)
	}

	logID, err := startRun(ctx, s.db, req.FileName, req.Kind, req.UserID)
	if err != nil {
		return nil, err
	}

	log := logging.ForRun(ctx, logID, string(req.Kind), req.FileName)

	rows, encoding, err := ReadFile(req.FilePath, req.Delimiter)
	if err != nil {
		return nil, s.abort(ctx, logID, log, err)
	}
	if len(rows) < 2 {
		return nil, s.abort(ctx, logID, log, ErrEmptyFile)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CleanHeader(h)
	}
	if isBlankHeader(headers) {
		return nil, s.abort(ctx, logID, log, ErrBlankHeader)
	}
	dataRows := rows[1:]

	if err := updateRunCounts(ctx, s.db, logID, encoding, len(dataRows)); err != nil {
		return nil, s.abort(ctx, logID, log, err)
	}

	log.Info("import started", "encoding", encoding, "rows", len(dataRows))

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, s.abort(ctx, logID, log, fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	details, err := processRows(ctx, tx, req.Kind, headers, dataRows, req.Mapping)
	if err != nil {
		return nil, s.abort(ctx, logID, log, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.abort(ctx, logID, log, fmt.Errorf("commit transaction: %w", err))
	}

	var imported, skipped, errorCount int
	for _, d := range details {
		switch d.Status {
		case RowImported:
			imported++
		case RowSkipped:
			skipped++
		case RowError:
			errorCount++
		}
	}

	status := RunCompleted
	if errorCount > 0 && imported == 0 {
		status = RunFailed
	} else if errorCount > 0 {
		status = RunPartial
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, s.abort(ctx, logID, log, fmt.Errorf("encode row details: %w", err))
	}
	if err := completeRun(ctx, s.db, logID, status, imported, skipped, errorCount, detailsJSON); err != nil {
		return nil, err
	}

	log.Info("import finished",
		"status", status,
		"imported", imported,
		"skipped", skipped,
		"errors", errorCount,
	)

	return &Result{
		Success:  true,
		Imported: imported,
		Skipped:  skipped,
		Errors:   errorCount,
		Details:  details,
		LogID:    logID,
	}, nil
}

// abort records the failure on the audit record and returns the original
// error. The log update is best-effort: a failure there is logged, not
// propagated over the root cause.
func (s *Service) abort(ctx context.Context, logID int64, log *slog.Logger, cause error) error {
	if err := failRun(ctx, s.db, logID, cause.Error()); err != nil {
		log.Warn("could not mark import log failed", "error", err)
	}
	return cause
}

// processRows imports every data row inside tx. Each row runs under its own
// savepoint: a failing row rolls back to the savepoint and is reported as an
// error outcome, leaving previous rows intact. Savepoint management failures
// abort the run.
//
// Reported row numbers are CSV line numbers: the header is line 1, the first
// data row line 2.
func processRows(ctx context.Context, tx database.DBTX, kind Kind, headers []string, dataRows [][]string, mapping map[string]string) ([]RowOutcome, error) {
	details := make([]RowOutcome, 0, len(dataRows))

	for i, row := range dataRows {
		rowNum := i + 2
		savepoint := fmt.Sprintf("sp_%d", rowNum)

		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("savepoint row %d: %w", rowNum, err)
		}

		rec := BuildRecord(headers, row, mapping)
		res, err := importRow(ctx, tx, kind, rec)
		if err != nil {
			if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return nil, fmt.Errorf("rollback row %d: %w", rowNum, rbErr)
			}
			details = append(details, RowOutcome{
				Row:    rowNum,
				Status: RowError,
				Error:  err.Error(),
			})
			continue
		}

		if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("release savepoint row %d: %w", rowNum, err)
		}

		details = append(details, RowOutcome{
			Row:    rowNum,
			Status: res.status,
			ID:     res.id,
			Reason: res.reason,
		})
	}

	return details, nil
}

// importRow dispatches one mapped record to its entity importer.
func importRow(ctx context.Context, db database.DBTX, kind Kind, rec Record) (rowResult, error) {
	switch kind {
	case KindMembers:
		return importMember(ctx, db, NewMemberRecord(rec))
	case KindJuniorMembers:
		return importJuniorMember(ctx, db, NewJuniorMemberRecord(rec))
	case KindVehicles:
		return importVehicle(ctx, db, NewVehicleRecord(rec))
	case KindWarehouseItems:
		return importWarehouseItem(ctx, db, NewWarehouseItemRecord(rec))
	}
	return rowResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
