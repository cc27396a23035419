package clean

import (
	"fmt"

	d "github.com/invertedv/incomereg"
)

// Validate checks a cleaned table before regression: all seven columns present with the right
// types, nothing missing, and pop_type only Urban or Rural.
func Validate(table *d.DF) error {
	for _, name := range Columns {
		var col *d.Col
		if col = table.Column(name); col == nil {
			return fmt.Errorf("%w: column %s not found", d.ErrValidation, name)
		}

		want := d.DTfloat
		if name == PopType {
			want = d.DTstring
		}

		if col.DataType() != want {
			return fmt.Errorf("%w: column %s is %s, want %s", d.ErrValidation, name, col.DataType(), want)
		}

		for row := 0; row < col.Len(); row++ {
			if col.Missing(row) {
				return fmt.Errorf("%w: column %s row %d is missing", d.ErrValidation, name, row+1)
			}
		}
	}

	pt, _ := table.Column(PopType).AsString()
	for row, v := range pt {
		if v != Urban && v != Rural {
			return fmt.Errorf("%w: %s row %d is %q, want %s or %s", d.ErrValidation, PopType, row+1, v, Urban, Rural)
		}
	}

	return nil
}
