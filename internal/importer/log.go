package importer

import (
	"context"
	"fmt"

	"github.com/easyvol/easyvol/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

// startRun opens an audit record for a run before any parsing happens, so
// even a file that fails to read leaves a trace.
func startRun(ctx context.Context, db database.DBTX, fileName string, kind Kind, userID int64) (int64, error) {
	createdBy := pgtype.Int8{Int64: userID, Valid: userID != 0}

	var logID int64
	err := db.QueryRow(ctx,
		`INSERT INTO import_logs (file_name, import_type, created_by, status)
		 VALUES ($1, $2, $3, 'in_progress')
		 RETURNING id`,
		fileName, kind, createdBy,
	).Scan(&logID)
	if err != nil {
		return 0, fmt.Errorf("start import log: %w", err)
	}
	return logID, nil
}

// updateRunCounts records the detected encoding and data-row count once the
// file has been parsed.
func updateRunCounts(ctx context.Context, db database.DBTX, logID int64, encoding string, totalRows int) error {
	_, err := db.Exec(ctx,
		`UPDATE import_logs SET file_encoding = $1, total_rows = $2 WHERE id = $3`,
		encoding, totalRows, logID,
	)
	if err != nil {
		return fmt.Errorf("update import log: %w", err)
	}
	return nil
}

// completeRun finalizes the audit record with counts, the terminal status
// and the serialized per-row outcomes.
func completeRun(ctx context.Context, db database.DBTX, logID int64, status RunStatus, imported, skipped, errors int, details []byte) error {
	_, err := db.Exec(ctx,
		`UPDATE import_logs
		 SET imported_rows = $1, skipped_rows = $2, error_rows = $3,
		     status = $4, import_details = $5, completed_at = now()
		 WHERE id = $6`,
		imported, skipped, errors, status, details, logID,
	)
	if err != nil {
		return fmt.Errorf("complete import log: %w", err)
	}
	return nil
}

// failRun marks the run failed with the setup or transaction error that
// aborted it. Best-effort: callers already carry the original error.
func failRun(ctx context.Context, db database.DBTX, logID int64, message string) error {
	_, err := db.Exec(ctx,
		`UPDATE import_logs SET status = 'failed', error_message = $1, completed_at = now() WHERE id = $2`,
		message, logID,
	)
	if err != nil {
		return fmt.Errorf("fail import log: %w", err)
	}
	return nil
}

// LogFilter narrows a log listing. Zero values mean no filter.
type LogFilter struct {
	ImportType Kind
	Status     RunStatus
}

// LogPage is one page of import log records.
type LogPage struct {
	Logs       []ImportLog `json:"logs"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"perPage"`
	TotalPages int         `json:"totalPages"`
}

// GetLogs lists past import runs, newest first, with optional type and
// status filters.
func (s *Service) GetLogs(ctx context.Context, filter LogFilter, page, perPage int) (*LogPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	wb := database.NewWhereBuilder()
	if filter.ImportType != "" {
		wb.Add("import_type", string(filter.ImportType))
	}
	if filter.Status != "" {
		wb.Add("status", string(filter.Status))
	}
	where, args := wb.Build()

	var total int
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM import_logs"+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count import logs: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, file_name, import_type, status, file_encoding,
		        total_rows, imported_rows, skipped_rows, error_rows,
		        import_details, error_message, started_at, completed_at, created_by
		 FROM import_logs%s
		 ORDER BY started_at DESC
		 LIMIT $%d OFFSET $%d`,
		where, wb.NextArgIndex(), wb.NextArgIndex()+1,
	)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}
	defer rows.Close()

	logs := []ImportLog{}
	for rows.Next() {
		var (
			log          ImportLog
			fileEncoding pgtype.Text
			details      []byte
			errorMessage pgtype.Text
			completedAt  pgtype.Timestamptz
			createdBy    pgtype.Int8
		)
		err := rows.Scan(
			&log.ID, &log.FileName, &log.ImportType, &log.Status, &fileEncoding,
			&log.TotalRows, &log.ImportedRows, &log.SkippedRows, &log.ErrorRows,
			&details, &errorMessage, &log.StartedAt, &completedAt, &createdBy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan import log: %w", err)
		}
		log.FileEncoding = fileEncoding.String
		log.ImportDetails = details
		log.ErrorMessage = errorMessage.String
		if completedAt.Valid {
			t := completedAt.Time
			log.CompletedAt = &t
		}
		log.CreatedBy = createdBy.Int64
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}

	totalPages := (total + perPage - 1) / perPage
	return &LogPage{
		Logs:       logs,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}
