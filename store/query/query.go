// Package query builds WHERE and ORDER BY clauses shared by the sql stores.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	nt "workgrid/entity"
)

// Dialect covers where the stores' sql differs.
type Dialect struct {
	// Placeholder returns the nth (1-based) bind parameter.
	Placeholder func(n int) string
	// Regex formats a regular expression match of column against a parameter.
	Regex string
	// Like is the substring match operator.
	Like string
}

var (
	Duck = Dialect{
		Placeholder: func(int) string { return "?" },
		Regex:       "regexp_matches(%s, %s)",
		Like:        "ILIKE",
	}
	Postgres = Dialect{
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		Regex:       "%s ~ %s",
		Like:        "ILIKE",
	}
)

var identRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Ident double quotes a column name, rejecting anything but plain identifiers.
func Ident(name string) (quoted string, err error) {

	if !identRx.MatchString(name) {
		err = errors.Errorf("invalid column name %q", name)
		return
	}
	quoted = `"` + name + `"`
	return
}

// Builder accumulates bind arguments while rendering clauses.
type Builder struct {
	dialect Dialect
	args    []any
}

func New(dialect Dialect) *Builder {
	return &Builder{dialect: dialect}
}

// Args returns the bind arguments for the clauses built so far.
func (bld *Builder) Args() []any {
	return bld.args
}

// Where returns a WHERE clause for filter, empty when it selects everything.
func (bld *Builder) Where(filter nt.Filter) (clause string, err error) {

	expr, err := bld.expr(filter)
	if err != nil || expr == "" {
		return
	}
	clause = "WHERE " + expr
	return
}

// OrderBy returns an ORDER BY clause for sort, empty when inactive.
// The row id breaks ties so the order is stable across fetches.
func (bld *Builder) OrderBy(sort nt.SortState, idColumn string) (clause string, err error) {

	if !sort.Active() {
		return
	}

	col, err := Ident(sort.ColumnId)
	if err != nil {
		return
	}

	dir := "ASC NULLS FIRST"
	if sort.Desc() {
		dir = "DESC NULLS LAST"
	}
	clause = fmt.Sprintf("ORDER BY %s %s", col, dir)

	if idColumn != "" && idColumn != sort.ColumnId {
		var id string
		id, err = Ident(idColumn)
		if err != nil {
			return
		}
		clause += ", " + id
	}
	return
}

// In returns "column IN (...)" over ids.
func (bld *Builder) In(column string, ids []string) (clause string, err error) {

	col, err := Ident(column)
	if err != nil {
		return
	}
	if len(ids) == 0 {
		err = errors.Errorf("no ids for %s", column)
		return
	}

	params := make([]string, len(ids))
	for i, id := range ids {
		params[i] = bld.bind(id)
	}
	clause = fmt.Sprintf("%s IN (%s)", col, strings.Join(params, ", "))
	return
}

// unexported

func (bld *Builder) bind(val any) string {
	bld.args = append(bld.args, val)
	return bld.dialect.Placeholder(len(bld.args))
}

func (bld *Builder) expr(f nt.Filter) (expr string, err error) {

	switch f.Op {
	case nt.And, nt.Or:
		var clauses []string
		for _, child := range f.Children {
			var sub string
			sub, err = bld.expr(child)
			if err != nil {
				return
			}
			if sub != "" {
				clauses = append(clauses, sub)
			}
		}
		if len(clauses) == 0 {
			return
		}
		joiner := " AND "
		if f.Op == nt.Or {
			joiner = " OR "
		}
		expr = "(" + strings.Join(clauses, joiner) + ")"
		return

	case nt.Not:
		if len(f.Children) == 0 {
			return
		}
		var sub string
		sub, err = bld.expr(f.Children[0])
		if err != nil || sub == "" {
			return
		}
		expr = "NOT (" + sub + ")"
		return
	}

	col, err := Ident(f.Field)
	if err != nil {
		return
	}

	switch f.Op {
	case nt.Eq:
		expr = fmt.Sprintf("%s = %s", col, bld.bind(f.Value))
	case nt.Ne:
		expr = fmt.Sprintf("%s != %s", col, bld.bind(f.Value))
	case nt.Gt:
		expr = fmt.Sprintf("%s > %s", col, bld.bind(f.Value))
	case nt.Gte:
		expr = fmt.Sprintf("%s >= %s", col, bld.bind(f.Value))
	case nt.Lt:
		expr = fmt.Sprintf("%s < %s", col, bld.bind(f.Value))
	case nt.Lte:
		expr = fmt.Sprintf("%s <= %s", col, bld.bind(f.Value))
	case nt.Contains:
		pattern := "%" + fmt.Sprintf("%v", f.Value) + "%"
		expr = fmt.Sprintf("CAST(%s AS VARCHAR) %s %s", col, bld.dialect.Like, bld.bind(pattern))
	case nt.Match:
		expr = fmt.Sprintf(bld.dialect.Regex, "CAST("+col+" AS VARCHAR)", bld.bind(fmt.Sprintf("%v", f.Value)))
	default:
		err = errors.Errorf("unsupported filter op %s", f.Op)
	}
	return
}
