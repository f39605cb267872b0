package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FilterOp represents a filter operation type.
type FilterOp int

const (
	// Logical operators
	And FilterOp = iota
	Or
	Not

	// Comparison operators
	Eq       // ==
	Ne       // !=
	Gt       // >
	Gte      // >=
	Lt       // <
	Lte      // <=
	Contains // substring match
	Match    // regex match
)

var opNames = []string{"and", "or", "not", "eq", "ne", "gt", "gte", "lt", "lte", "contains", "match"}

func (op FilterOp) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// MarshalText lets layouts spell ops by name.
func (op FilterOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText parses an op name.
func (op *FilterOp) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == strings.ToLower(string(text)) {
			*op = FilterOp(i)
			return nil
		}
	}
	return errors.Errorf("unknown filter op %q", text)
}

// Filter represents a composable filter for row queries.
// Filters can be simple comparisons or complex logical combinations.
type Filter struct {
	Op       FilterOp `yaml:"op" toml:"op"`                           // Operation type
	Field    string   `yaml:"field,omitempty" toml:"field,omitempty"` // Field name for comparison (empty for logical ops)
	Value    any      `yaml:"value,omitempty" toml:"value,omitempty"` // Comparison value (nil for logical ops)
	Children []Filter `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Empty reports a filter that selects everything.
func (f Filter) Empty() bool {
	return f.Op == And && f.Field == "" && len(f.Children) == 0
}

// longest operators first so ">=" is not read as ">"
var whereOps = []struct {
	token string
	op    FilterOp
}{
	{"!=", Ne},
	{">=", Gte},
	{"<=", Lte},
	{"~=", Match},
	{"=", Eq},
	{">", Gt},
	{"<", Lt},
	{"~", Contains},
}

// ParseWhere reads comma separated comparisons such as "status=paid,amount>=100"
// into an And filter.
func ParseWhere(expr string) (filter Filter, err error) {

	filter = Filter{Op: And}
	if strings.TrimSpace(expr) == "" {
		return
	}

	for _, term := range strings.Split(expr, ",") {
		term = strings.TrimSpace(term)

		var child Filter
		child, err = parseTerm(term)
		if err != nil {
			return
		}
		filter.Children = append(filter.Children, child)
	}
	return
}

func parseTerm(term string) (filter Filter, err error) {

	best := -1
	for i, wo := range whereOps {
		idx := strings.Index(term, wo.token)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < strings.Index(term, whereOps[best].token) {
			best = i
		}
	}

	if best < 0 {
		err = errors.Errorf("no operator in %q", term)
		return
	}

	wo := whereOps[best]
	idx := strings.Index(term, wo.token)
	field := strings.TrimSpace(term[:idx])
	value := strings.TrimSpace(term[idx+len(wo.token):])
	if field == "" {
		err = errors.Errorf("no field in %q", term)
		return
	}

	filter = Filter{Op: wo.op, Field: field, Value: literal(value)}
	if wo.op == Contains || wo.op == Match {
		filter.Value = value
	}
	return
}

// Where renders a filter as ParseWhere reads it.
// Only an And of comparisons has such a form, ok is false otherwise.
func (f Filter) Where() (expr string, ok bool) {

	if f.Op != And || f.Field != "" {
		return
	}

	terms := make([]string, len(f.Children))
	for i, child := range f.Children {
		token := ""
		for _, wo := range whereOps {
			if wo.op == child.Op {
				token = wo.token
				break
			}
		}
		if token == "" || child.Field == "" || len(child.Children) > 0 {
			return
		}
		terms[i] = fmt.Sprintf("%s%s%v", child.Field, token, child.Value)
	}

	return strings.Join(terms, ","), true
}

// literal types a value typed on the command line.
func literal(text string) any {

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	if text == "true" || text == "false" {
		return text == "true"
	}
	return strings.Trim(text, `"'`)
}
