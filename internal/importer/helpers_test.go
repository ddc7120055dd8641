package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ============================================================================
// Database fakes
//
// fakeDB stands in for a transaction: it tracks every executed statement and
// simulates the natural-key tables the importers check against. fakeTx and
// fakePool wrap it so the full Import path can run without Postgres.
// ============================================================================

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	// keys simulates the natural-key column of each target table:
	// "members/M001" -> id.
	keys   map[string]int64
	nextID int64

	// failInsertKey makes the core insert for this natural key fail, to
	// drive error outcomes through the savepoint path.
	failInsertKey string

	execSQL []string
	logID   int64

	// logStatus captures the terminal status written by the log finalizer.
	logStatus RunStatus
}

func newFakeDB() *fakeDB {
	return &fakeDB{keys: map[string]int64{}, nextID: 100, logID: 1}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	switch {
	case strings.Contains(sql, "status = 'failed'"):
		f.logStatus = RunFailed
	case strings.Contains(sql, "import_details"):
		if len(args) > 3 {
			if s, ok := args[3].(RunStatus); ok {
				f.logStatus = s
			}
		}
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...interface{}) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	switch {
	case strings.Contains(sql, "INSERT INTO import_logs"):
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(*int64)) = f.logID
			return nil
		}}

	case strings.HasPrefix(sql, "SELECT id FROM"):
		table := tableFromQuery(sql)
		key, _ := args[0].(string)
		if id, ok := f.keys[table+"/"+key]; ok {
			return fakeRow{scan: func(dest ...any) error {
				*(dest[0].(*int64)) = id
				return nil
			}}
		}
		return fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}

	case strings.Contains(sql, "RETURNING id"):
		table := tableFromQuery(sql)
		key := naturalKey(args[0])
		if table == "vehicles" && len(args) > 2 {
			key = naturalKey(args[2])
		}
		if key != "" && key == f.failInsertKey {
			return fakeRow{scan: func(...any) error {
				return errors.New("duplicate key value violates unique constraint")
			}}
		}
		f.nextID++
		id := f.nextID
		if key != "" {
			f.keys[table+"/"+key] = id
		}
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(*int64)) = id
			return nil
		}}
	}

	return fakeRow{scan: func(...any) error {
		return fmt.Errorf("unexpected query: %s", sql)
	}}
}

// countExec counts executed statements containing the given fragment.
func (f *fakeDB) countExec(fragment string) int {
	n := 0
	for _, sql := range f.execSQL {
		if strings.Contains(sql, fragment) {
			n++
		}
	}
	return n
}

func tableFromQuery(sql string) string {
	for _, table := range []string{"junior_members", "members", "vehicles", "warehouse_items", "import_logs"} {
		if strings.Contains(sql, table) {
			return table
		}
	}
	return ""
}

// naturalKey extracts the text value of an insert argument. The natural-key
// column is the first insert argument for every table except vehicles, where
// the plate comes third.
func naturalKey(arg interface{}) string {
	switch v := arg.(type) {
	case string:
		return v
	case pgtype.Text:
		if v.Valid {
			return v.String
		}
	}
	return ""
}

type fakeTx struct {
	db         *fakeDB
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions not supported")
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

type fakePool struct {
	db *fakeDB
	tx *fakeTx
}

func newFakePool() *fakePool {
	db := newFakeDB()
	return &fakePool{db: db, tx: &fakeTx{db: db}}
}

func (p *fakePool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return p.db.Exec(ctx, sql, args...)
}

func (p *fakePool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return p.db.Query(ctx, sql, args...)
}

func (p *fakePool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return p.db.QueryRow(ctx, sql, args...)
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	return p.tx, nil
}
