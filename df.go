package df

import (
	"fmt"
	"strings"
)

// DF is an ordered set of equal-length, uniquely named columns. Rows are records.
type DF struct {
	head *columnList
}

type columnList struct {
	col *Col

	prior *columnList
	next  *columnList
}

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
)

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "DTstring"
	case DTfloat:
		return "DTfloat"
	default:
		return "DTunknown"
	}
}

func NewDF(cols ...*Col) (*DF, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	df := &DF{}
	for ind := 0; ind < len(cols); ind++ {
		if e := df.AppendColumn(cols[ind], false); e != nil {
			return nil, e
		}
	}

	return df, nil
}

// *********** DF methods ***********

func (df *DF) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DF) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DF) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

// Columns returns the columns in order. The columns are shared with df.
func (df *DF) Columns() []*Col {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, h.col)
	}

	return cols
}

// Column returns the column colName or nil if there is no such column.
func (df *DF) Column(colName string) *Col {
	if n := df.node(colName); n != nil {
		return n.col
	}

	return nil
}

// AppendColumn adds col at the end of df. If replace is true, an existing column of the same
// name is replaced in place.
func (df *DF) AppendColumn(col *Col, replace bool) error {
	if col == nil {
		return fmt.Errorf("nil column in AppendColumn")
	}

	if col.Name() == "" {
		return fmt.Errorf("unnamed column in AppendColumn")
	}

	if df.head != nil && col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col %s - %d", df.RowCount(), col.Name(), col.Len())
	}

	if n := df.node(col.Name()); n != nil {
		if !replace {
			return fmt.Errorf("duplicate column name: %s", col.Name())
		}

		n.col = col
		return nil
	}

	node := &columnList{col: col}
	if df.head == nil {
		df.head = node
		return nil
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	node.prior = tail
	tail.next = node

	return nil
}

func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		var node *columnList
		if node = df.node(cName); node == nil {
			return fmt.Errorf("column %s not found", cName)
		}

		if node == df.head {
			if df.head.next == nil {
				return fmt.Errorf("no columns left")
			}

			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	return nil
}

// KeepColumns returns a new DF holding copies of colNames, in that order.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	var cols []*Col
	for ind := 0; ind < len(colNames); ind++ {
		var col *Col
		if col = df.Column(colNames[ind]); col == nil {
			return nil, fmt.Errorf("column %s not found", colNames[ind])
		}

		cols = append(cols, col.Copy())
	}

	return NewDF(cols...)
}

// Rename renames column oldName to newName.
func (df *DF) Rename(oldName, newName string) error {
	var col *Col
	if col = df.Column(oldName); col == nil {
		return fmt.Errorf("column %s not found", oldName)
	}

	if oldName != newName && df.Column(newName) != nil {
		return fmt.Errorf("column %s already exists, cannot Rename", newName)
	}

	return col.Rename(newName)
}

// Subset returns a new DF with the given rows, in order.
func (df *DF) Subset(rows []int) (*DF, error) {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		var (
			c *Col
			e error
		)
		if c, e = h.col.Subset(rows); e != nil {
			return nil, e
		}

		cols = append(cols, c)
	}

	return NewDF(cols...)
}

// Head returns a copy of the first n rows.
func (df *DF) Head(n int) *DF {
	n = max(0, min(n, df.RowCount()))

	rows := make([]int, n)
	for ind := range rows {
		rows[ind] = ind
	}

	out, e := df.Subset(rows)
	if e != nil {
		panic(e)
	}

	return out
}

func (df *DF) Copy() *DF {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, h.col.Copy())
	}

	out, _ := NewDF(cols...)

	return out
}

// Row returns the values of row indx in column order.
func (df *DF) Row(indx int) []any {
	var r []any
	for h := df.head; h != nil; h = h.next {
		r = append(r, h.col.Element(indx))
	}

	return r
}

func (df *DF) String() string {
	if df.head == nil {
		return "empty DF\n"
	}

	var (
		header []string
		cols   []any
	)
	for h := df.head; h != nil; h = h.next {
		header = append(header, h.col.Name())
		cols = append(cols, h.col.AsAny())
	}

	t := PrettyPrint(header, cols...)

	return strings.TrimRight(t, "\n") + fmt.Sprintf("\n[%d rows x %d columns]\n", df.RowCount(), df.ColumnCount())
}

func (df *DF) node(colName string) *columnList {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h
		}
	}

	return nil
}
