// Package pg is a Store over a PostgreSQL table.
package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	nt "workgrid/entity"
	"workgrid/store/query"
)

const idColumn = "id"

// Pg reads and deletes rows of a single table.
type Pg struct {
	pool   *pgxpool.Pool
	table  string
	logger nt.Logger
	filter nt.Filter
	sort   nt.SortState
}

// New connects to url and checks table is readable.
func New(ctx context.Context, url, table string, lgr nt.Logger) (pg *Pg, err error) {

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		err = errors.Wrapf(err, "invalid connection url")
		return
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		err = errors.Wrapf(err, "failed to connect")
		return
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		err = errors.Wrapf(err, "failed to ping database")
		return
	}

	pg = &Pg{
		pool:   pool,
		table:  table,
		logger: lgr,
		filter: nt.Filter{Op: nt.And},
	}
	return
}

func (pg *Pg) Close() error {
	pg.pool.Close()
	return nil
}

// Name returns the table name
func (pg *Pg) Name() string {
	return pg.table
}

// SetView Filter and Sort
func (pg *Pg) SetView(filter nt.Filter, sort nt.SortState) (err error) {
	pg.filter = filter
	pg.sort = sort
	return nil
}

// Columns describes the table from an empty result, id first.
func (pg *Pg) Columns(ctx context.Context) (columns []nt.Column, err error) {

	rows, err := pg.pool.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", pg.ident()))
	if err != nil {
		err = errors.Wrapf(err, "failed to describe %s", pg.table)
		return
	}
	defer rows.Close()

	for _, fd := range rows.FieldDescriptions() {
		col := column(fd)
		if fd.Name == idColumn {
			columns = append([]nt.Column{col}, columns...)
			continue
		}
		columns = append(columns, col)
	}
	return
}

// Rows returns the filtered, sorted rows.
func (pg *Pg) Rows(ctx context.Context) (records []nt.Row, err error) {

	bld := query.New(query.Postgres)

	where, err := bld.Where(pg.filter)
	if err != nil {
		return
	}
	orderBy, err := bld.OrderBy(pg.sort, idColumn)
	if err != nil {
		return
	}

	stmt := fmt.Sprintf("SELECT * FROM %s %s %s", pg.ident(), where, orderBy)

	rows, err := pg.pool.Query(ctx, stmt, bld.Args()...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query %s", pg.table)
		return
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	records = []nt.Row{}
	for rows.Next() {
		var vals []any
		vals, err = rows.Values()
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		row := nt.Row{Values: make(map[string]nt.Value, len(fields))}
		for i, fd := range fields {
			row.Values[fd.Name] = nt.Value{Raw: normalize(vals[i])}
			if fd.Name == idColumn {
				row.Id = row.Values[fd.Name].String()
			}
		}
		records = append(records, row)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// Delete removes rows by id, returning how many went.
func (pg *Pg) Delete(ctx context.Context, ids []string) (count int, err error) {

	if len(ids) == 0 {
		return
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE CAST(%s AS TEXT) = ANY($1)",
		pg.ident(), pgx.Identifier{idColumn}.Sanitize())

	tag, err := pg.pool.Exec(ctx, stmt, ids)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete from %s", pg.table)
		return
	}
	count = int(tag.RowsAffected())

	pg.logger.Info(ctx, "deleted rows", "table", pg.table, "requested", len(ids), "deleted", count)
	return
}

// unexported

func (pg *Pg) ident() string {
	return pgx.Identifier(strings.Split(pg.table, ".")).Sanitize()
}

// normalize narrows pgx types to ones Value compares.
func normalize(val any) any {

	switch v := val.(type) {
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16])
	case int16:
		return int64(v)
	case float32:
		return float64(v)
	}
	return val
}

func column(fd pgconn.FieldDescription) nt.Column {

	col := nt.Column{
		Id:       fd.Name,
		Label:    strings.ReplaceAll(fd.Name, "_", " "),
		Sortable: true,
	}

	switch fd.DataTypeOID {
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID, pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID:
		col.CellAlign = nt.AlignEnd
		col.HeaderAlign = nt.AlignEnd
	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		col.Format = "2006-01-02 15:04"
	case pgtype.DateOID:
		col.Format = "2006-01-02"
	case pgtype.JSONOID, pgtype.JSONBOID:
		col.Hidden = true
	}
	return col
}
