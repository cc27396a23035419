package source

import (
	"fmt"

	d "github.com/invertedv/incomereg"
	"github.com/xuri/excelize/v2"
)

// Sheet reads one worksheet of an .xlsx workbook. The USDA county files ship this way, with a
// few rows of titles above the header.
type Sheet struct {
	fileName  string
	sheetName string
	skip      int
}

// NewSheet reads sheetName from fileName; an empty sheetName selects the first worksheet.
// skip rows of preamble are dropped ahead of the header.
func NewSheet(fileName, sheetName string, skip int) (*Sheet, error) {
	if skip < 0 {
		return nil, fmt.Errorf("negative skip")
	}

	return &Sheet{fileName: fileName, sheetName: sheetName, skip: skip}, nil
}

func (s *Sheet) Name() string {
	if s.sheetName == "" {
		return s.fileName
	}

	return s.fileName + ":" + s.sheetName
}

func (s *Sheet) Load() (*d.DF, error) {
	var (
		f *excelize.File
		e error
	)
	if f, e = excelize.OpenFile(s.fileName); e != nil {
		return nil, readErr(s.Name(), e)
	}
	defer f.Close()

	sheet := s.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, readErr(s.Name(), fmt.Errorf("workbook has no sheets"))
		}

		sheet = sheets[0]
	}

	var rows [][]string
	if rows, e = f.GetRows(sheet); e != nil {
		return nil, readErr(s.Name(), e)
	}

	if len(rows) <= s.skip {
		return nil, readErr(s.Name(), fmt.Errorf("sheet %s has %d rows, need more than %d", sheet, len(rows), s.skip))
	}

	rows = rows[s.skip:]

	return tableFromRows(s.Name(), rows[0], rows[1:])
}
