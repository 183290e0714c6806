package gene

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ErrBadColumnFilter is returned by ParseColumnFilter.
var ErrBadColumnFilter = zerr.New("invalid column filter")

// ColumnFilter narrows an already filtered table by one column, like
// "Q_Value < 0.05". It never feeds back into Filter.
type ColumnFilter struct {
	Column string
	Op     string
	Value  float64
	Text   string
}

// longest operators first so "<=" is not read as "<"
var columnOps = []string{"<=", ">=", "!=", "<", ">", "="}

// ParseColumnFilter parses "<column> <op> <value>". Numeric columns accept
// < <= > >= = and !=; the Gene column accepts = and != (case-insensitive)
// and "contains".
func ParseColumnFilter(expr string) (ColumnFilter, error) {
	expr = strings.TrimSpace(expr)
	bad := func() (ColumnFilter, error) {
		return ColumnFilter{}, zerr.With(ErrBadColumnFilter, "expr", expr)
	}

	var f ColumnFilter
	var lhs, rhs string
	if i := strings.Index(strings.ToLower(expr), " contains "); i > 0 {
		lhs, f.Op, rhs = expr[:i], "contains", expr[i+len(" contains "):]
	} else {
		for _, op := range columnOps {
			if i := strings.Index(expr, op); i > 0 {
				lhs, f.Op, rhs = expr[:i], op, expr[i+len(op):]
				break
			}
		}
	}
	if f.Op == "" {
		return bad()
	}
	col, ok := canonicalColumn(strings.TrimSpace(lhs))
	rhs = strings.TrimSpace(rhs)
	if !ok || rhs == "" {
		return bad()
	}
	f.Column = col

	if col == ColGene {
		if f.Op != "=" && f.Op != "!=" && f.Op != "contains" {
			return bad()
		}
		f.Text = strings.ToLower(rhs)
		return f, nil
	}
	if f.Op == "contains" {
		return bad()
	}
	v, err := strconv.ParseFloat(rhs, 64)
	if err != nil || !finite(v) {
		return bad()
	}
	f.Value = v
	return f, nil
}

func canonicalColumn(name string) (string, bool) {
	for _, c := range csvHeader {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func (f ColumnFilter) String() string {
	if f.Column == ColGene {
		return f.Column + " " + f.Op + " " + f.Text
	}
	return f.Column + " " + f.Op + " " + strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// Match reports whether r passes the filter.
func (f ColumnFilter) Match(r Record) bool {
	if f.Column == ColGene {
		id := strings.ToLower(r.ID)
		switch f.Op {
		case "=":
			return id == f.Text
		case "!=":
			return id != f.Text
		default:
			return strings.Contains(id, f.Text)
		}
	}
	var v float64
	switch f.Column {
	case ColX:
		v = r.X
	case ColY:
		v = r.Y
	default:
		v = r.Q
	}
	switch f.Op {
	case "<":
		return v < f.Value
	case "<=":
		return v <= f.Value
	case ">":
		return v > f.Value
	case ">=":
		return v >= f.Value
	case "=":
		return v == f.Value
	default:
		return v != f.Value
	}
}

// ApplyColumns keeps the rows passing every filter, in their current order.
// rows is filtered in place.
func ApplyColumns(rows []Record, filters []ColumnFilter) []Record {
	if len(filters) == 0 {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		keep := true
		for _, f := range filters {
			if !f.Match(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}
