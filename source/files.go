package source

import (
	"encoding/csv"
	"fmt"
	"os"

	d "github.com/invertedv/incomereg"
)

// All code reading delimited text files is here

const (
	Sep  = ','
	Skip = 0
)

// Files reads a delimited text file. The header is the first row after Skip preamble rows.
type Files struct {
	Sep        rune
	Skip       int
	LazyQuotes bool

	fileName string
}

type FileOpt func(f *Files) error

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == 0 || sep == '"' || sep == '\n' || sep == '\r' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep

		return nil
	}
}

// FileSkip skips n rows of preamble ahead of the header.
func FileSkip(n int) FileOpt {
	return func(f *Files) error {
		if n < 0 {
			return fmt.Errorf("negative skip")
		}

		f.Skip = n

		return nil
	}
}

func FileLazyQuotes(lazy bool) FileOpt {
	return func(f *Files) error {
		f.LazyQuotes = lazy
		return nil
	}
}

func NewFiles(fileName string, opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:      Sep,
		Skip:     Skip,
		fileName: fileName,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

func (f *Files) Name() string {
	return f.fileName
}

func (f *Files) Load() (*d.DF, error) {
	var (
		file *os.File
		e    error
	)
	if file, e = os.Open(f.fileName); e != nil {
		return nil, readErr(f.fileName, e)
	}
	defer file.Close()

	rdr := csv.NewReader(file)
	rdr.Comma = f.Sep
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = f.LazyQuotes

	var records [][]string
	if records, e = rdr.ReadAll(); e != nil {
		return nil, readErr(f.fileName, e)
	}

	if len(records) <= f.Skip {
		return nil, readErr(f.fileName, fmt.Errorf("file has %d rows, need more than %d", len(records), f.Skip))
	}

	records = records[f.Skip:]

	return tableFromRows(f.fileName, records[0], records[1:])
}
