package duck

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/marcboeker/go-duckdb"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	nt "workgrid/entity"
	"workgrid/store/query"
)

const (
	table    = "records"
	idColumn = "id"
)

// Duck is a Store over an embedded DuckDB holding one loaded file.
type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filter   nt.Filter
	sort     nt.SortState
	filename string
}

// New opens an in-memory database, or a file when path is given.
func New(path string, lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open duck at %q", path)
		return
	}

	dk = &Duck{
		db:     db,
		filter: nt.Filter{Op: nt.And},
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() error {
	return dk.db.Close()
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	return filepath.Base(dk.filename)
}

// Load reads a csv, json or parquet file into the records table.
// Rows without an id column are given ulids.
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	reader, err := readerFor(path)
	if err != nil {
		return
	}

	create := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s('%s')",
		table, reader, strings.ReplaceAll(path, "'", "''"))

	_, err = dk.db.ExecContext(ctx, create)
	if err != nil {
		err = errors.Wrapf(err, "failed to load %s", path)
		return
	}
	dk.filename = path

	err = dk.ensureIds(ctx)
	if err != nil {
		return
	}

	var count int
	err = dk.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	if err != nil {
		err = errors.Wrapf(err, "failed to count %s", table)
		return
	}

	dk.logger.Info(ctx, "loaded file", "path", path, "rows", count)
	return
}

// SetView Filter and Sort
func (dk *Duck) SetView(filter nt.Filter, sort nt.SortState) (err error) {
	dk.filter = filter
	dk.sort = sort
	return nil
}

// Columns describes the records table, id first.
func (dk *Duck) Columns(ctx context.Context) (columns []nt.Column, err error) {

	rows, err := dk.db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType string
		if err = rows.Scan(&name, &dataType); err != nil {
			err = errors.Wrapf(err, "failed to scan field")
			return
		}

		col := column(name, dataType)
		if name == idColumn {
			columns = append([]nt.Column{col}, columns...)
			continue
		}
		columns = append(columns, col)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating schema")
	return
}

// Rows returns the filtered, sorted records.
func (dk *Duck) Rows(ctx context.Context) (records []nt.Row, err error) {

	bld := query.New(query.Duck)

	where, err := bld.Where(dk.filter)
	if err != nil {
		return
	}
	orderBy, err := bld.OrderBy(dk.sort, idColumn)
	if err != nil {
		return
	}

	stmt := fmt.Sprintf("SELECT * FROM %s %s %s", table, where, orderBy)

	rows, err := dk.db.QueryContext(ctx, stmt, bld.Args()...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query %s", table)
		return
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	records = []nt.Row{}
	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(names))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}
		records = append(records, record(names, vals))
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// Delete removes records by id, returning how many went.
func (dk *Duck) Delete(ctx context.Context, ids []string) (count int, err error) {

	bld := query.New(query.Duck)
	in, err := bld.In(idColumn, ids)
	if err != nil {
		return
	}

	result, err := dk.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", table, in), bld.Args()...)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete from %s", table)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		err = errors.Wrapf(err, "failed to get rows affected")
		return
	}
	count = int(affected)

	dk.logger.Info(ctx, "deleted rows", "requested", len(ids), "deleted", count)
	return
}

// unexported

func readerFor(path string) (reader string, err error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		reader = "read_csv_auto"
	case ".json", ".ndjson", ".jsonl":
		reader = "read_json_auto"
	case ".parquet":
		reader = "read_parquet"
	default:
		err = errors.Errorf("unsupported file type: %s", path)
	}
	return
}

// ensureIds adds an id column of ulids when the file lacks one.
func (dk *Duck) ensureIds(ctx context.Context) (err error) {

	var have int
	err = dk.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.columns
		WHERE table_name = ? AND column_name = ?
	`, table, idColumn).Scan(&have)
	if err != nil {
		err = errors.Wrapf(err, "failed to check for id column")
		return
	}
	if have > 0 {
		return
	}

	_, err = dk.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s VARCHAR", table, idColumn))
	if err != nil {
		err = errors.Wrapf(err, "failed to add id column")
		return
	}

	rowids, err := dk.rowids(ctx)
	if err != nil {
		return
	}

	tx, err := dk.db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin")
		return
	}
	defer tx.Rollback()

	update := fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?", table, idColumn)
	for _, rowid := range rowids {
		_, err = tx.ExecContext(ctx, update, ulid.Make().String(), rowid)
		if err != nil {
			err = errors.Wrapf(err, "failed to set id")
			return
		}
	}

	err = tx.Commit()
	err = errors.Wrapf(err, "failed to commit ids")
	return
}

func (dk *Duck) rowids(ctx context.Context) (rowids []int64, err error) {

	rows, err := dk.db.QueryContext(ctx, fmt.Sprintf("SELECT rowid FROM %s ORDER BY rowid", table))
	if err != nil {
		err = errors.Wrapf(err, "failed to query rowids")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var rowid int64
		if err = rows.Scan(&rowid); err != nil {
			err = errors.Wrapf(err, "failed to scan rowid")
			return
		}
		rowids = append(rowids, rowid)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rowids")
	return
}

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}

func record(names []string, vals []any) nt.Row {

	row := nt.Row{Values: make(map[string]nt.Value, len(names))}
	for i, name := range names {
		row.Values[name] = nt.Value{Raw: normalize(vals[i])}
		if name == idColumn {
			row.Id = row.Values[name].String()
		}
	}
	return row
}

// normalize narrows driver specific types to ones Value compares.
func normalize(val any) any {

	switch v := val.(type) {
	case duckdb.Decimal:
		if v.Value == nil {
			return nil
		}
		scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(v.Scale)), nil))
		f, _ := new(big.Float).Quo(new(big.Float).SetInt(v.Value), scale).Float64()
		return f
	case *big.Int:
		if v.IsInt64() {
			return v.Int64()
		}
		return v.String()
	case []byte:
		return string(v)
	}
	return val
}

func column(name, dataType string) nt.Column {

	col := nt.Column{
		Id:       name,
		Label:    strings.ReplaceAll(name, "_", " "),
		Sortable: true,
	}

	switch {
	case strings.HasPrefix(dataType, "DECIMAL"), numeric[dataType]:
		col.CellAlign = nt.AlignEnd
		col.HeaderAlign = nt.AlignEnd
	case strings.HasPrefix(dataType, "TIMESTAMP"):
		col.Format = "2006-01-02 15:04"
	case dataType == "DATE":
		col.Format = "2006-01-02"
	}
	return col
}

var numeric = map[string]bool{
	"TINYINT": true, "SMALLINT": true, "INTEGER": true, "BIGINT": true, "HUGEINT": true,
	"UTINYINT": true, "USMALLINT": true, "UINTEGER": true, "UBIGINT": true,
	"FLOAT": true, "DOUBLE": true,
}
