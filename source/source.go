// Package source reads the tabular inputs of the pipeline. Every source yields a *df.DF whose
// columns are all DTstring; typing is left to the cleaner.
package source

import (
	"fmt"
	"strings"

	d "github.com/invertedv/incomereg"
	"k8s.io/klog/v2"
)

// Source is a tabular data source.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Load reads the whole source. Errors wrap df.ErrSourceRead.
	Load() (*d.DF, error)
}

// readErr wraps e as a d.ErrSourceRead for source name.
func readErr(name string, e error) error {
	return fmt.Errorf("%w: %s: %v", d.ErrSourceRead, name, e)
}

// tableFromRows builds a string DF from a header and data rows. Cells are trimmed, short rows
// are padded with "", rows with no content are skipped.
func tableFromRows(name string, header []string, rows [][]string) (*d.DF, error) {
	if len(header) == 0 {
		return nil, readErr(name, fmt.Errorf("no header"))
	}

	names := make([]string, len(header))
	for ind, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, readErr(name, fmt.Errorf("empty column name at position %d", ind))
		}

		for _, prior := range names[:ind] {
			if prior == h {
				return nil, readErr(name, fmt.Errorf("duplicate column name %q", h))
			}
		}

		names[ind] = h
	}

	data := make([][]string, len(names))
	skipped := 0
	for r, row := range rows {
		if blank(row) {
			skipped++
			continue
		}

		for ind := len(names); ind < len(row); ind++ {
			if strings.TrimSpace(row[ind]) != "" {
				return nil, readErr(name, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(names)))
			}
		}

		for ind := range names {
			cell := ""
			if ind < len(row) {
				cell = strings.TrimSpace(row[ind])
			}

			data[ind] = append(data[ind], cell)
		}
	}

	if skipped > 0 {
		klog.V(2).InfoS("skipped blank rows", "source", name, "rows", skipped)
	}

	cols := make([]*d.Col, len(names))
	for ind, nm := range names {
		if data[ind] == nil {
			data[ind] = []string{}
		}

		var e error
		if cols[ind], e = d.NewCol(data[ind], d.DTstring, d.ColName(nm)); e != nil {
			return nil, readErr(name, e)
		}
	}

	var (
		df *d.DF
		e  error
	)
	if df, e = d.NewDF(cols...); e != nil {
		return nil, readErr(name, e)
	}

	klog.V(1).InfoS("loaded source", "source", name, "rows", df.RowCount(), "columns", df.ColumnCount())

	return df, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
