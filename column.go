package df

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Col is a named Vector. A string column may declare its category levels; the first level is
// the reference level when the column is dummy coded.
type Col struct {
	*Vector

	name   string
	levels []string
}

func NewCol(data any, dt DataTypes, opts ...ColOpt) (*Col, error) {
	var col *Col
	if v, ok := data.(*Vector); ok {
		col = &Col{Vector: v}
	}

	if col == nil {
		var (
			v *Vector
			e error
		)
		if v, e = NewVector(data, dt); e != nil {
			return nil, e
		}

		col = &Col{Vector: v}
	}

	for _, opt := range opts {
		if e := opt(col); e != nil {
			return nil, e
		}
	}

	return col, nil
}

// *********** Setters ***********

type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if !validName(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}

		c.name = name

		return nil
	}
}

// ColLevels declares the category levels of a string column.
func ColLevels(levels ...string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColLevels")
		}

		if c.DataType() != DTstring {
			return fmt.Errorf("levels require a %s column, got %s", DTstring, c.DataType())
		}

		seen := make(map[string]bool)
		for _, l := range levels {
			if l == "" || seen[l] {
				return fmt.Errorf("bad level list %v", levels)
			}
			seen[l] = true
		}

		c.levels = append([]string(nil), levels...)

		return nil
	}
}

// *********** Methods ***********

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Name() string {
	return c.name
}

func (c *Col) Rename(newName string) error {
	if !validName(newName) {
		return fmt.Errorf("invalid column name: %q", newName)
	}

	c.name = newName

	return nil
}

// Levels returns the declared levels, or the sorted distinct non-missing values when none
// were declared. It returns nil for float columns.
func (c *Col) Levels() []string {
	if c.DataType() != DTstring {
		return nil
	}

	if c.levels != nil {
		return append([]string(nil), c.levels...)
	}

	x, _ := c.AsString()
	var lvls []string
	for _, s := range x {
		if s != "" && !Has(s, lvls) {
			lvls = append(lvls, s)
		}
	}

	sort.Strings(lvls)

	return lvls
}

func (c *Col) Copy() *Col {
	return &Col{
		Vector: c.Vector.Copy(),
		name:   c.name,
		levels: append([]string(nil), c.levels...),
	}
}

// Subset returns a copy of the column restricted to rows.
func (c *Col) Subset(rows []int) (*Col, error) {
	var (
		v *Vector
		e error
	)
	if v, e = c.Vector.Subset(rows); e != nil {
		return nil, e
	}

	return &Col{Vector: v, name: c.name, levels: c.levels}, nil
}

func (c *Col) String() string {
	t := fmt.Sprintf("column: %s\ntype: %s\n", c.Name(), c.DataType())

	if c.DataType() == DTstring {
		counts := make(map[string]int)
		x, _ := c.AsString()
		for _, s := range x {
			counts[s]++
		}

		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		vals := make([]float64, len(keys))
		for ind, k := range keys {
			vals[ind] = float64(counts[k])
			if k == "" {
				keys[ind] = "<missing>"
			}
		}

		return t + PrettyPrint([]string{c.Name(), "count"}, keys, vals)
	}

	x, _ := c.AsFloat()
	var present []float64
	for _, xv := range x {
		if !math.IsNaN(xv) {
			present = append(present, xv)
		}
	}

	if len(present) == 0 {
		return t + "no data\n"
	}

	sort.Float64s(present)
	cats := []string{"min", "lq", "median", "mean", "uq", "max", "n"}
	vals := []float64{present[0],
		stat.Quantile(0.25, stat.Empirical, present, nil),
		stat.Quantile(0.5, stat.Empirical, present, nil),
		stat.Mean(present, nil),
		stat.Quantile(0.75, stat.Empirical, present, nil),
		present[len(present)-1],
		float64(len(present))}

	return t + strings.TrimRight(PrettyPrint([]string{"metric", "value"}, cats, vals), "\n") + "\n"
}
