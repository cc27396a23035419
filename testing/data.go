// Package testing holds synthetic county data shared by the tests of the other packages and the
// end-to-end pipeline tests.
package testing

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"

	d "github.com/invertedv/incomereg"
	"github.com/invertedv/incomereg/clean"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	educationFile    = "education.csv"
	unemploymentFile = "unemployment.csv"
)

// County is one synthetic county before cleaning.
type County struct {
	FIPS        string
	State       string
	Settlement  string
	NoHS        float64
	HS          float64
	SomeCollege float64
	Bachelors   float64
	Income      float64
	Unemp       float64
}

// Counties generates n deterministic counties. Income depends linearly on the education shares
// and on urban settlement, plus a bounded deterministic disturbance.
func Counties(n int) []County {
	settlements := []string{"Rural", "City", "Town", "Suburb"}
	out := make([]County, n)
	for ind := 0; ind < n; ind++ {
		c := County{
			FIPS:        fmt.Sprintf("%05d", 1001+2*ind),
			State:       "AL",
			Settlement:  settlements[ind%len(settlements)],
			NoHS:        5 + float64((ind*7)%17),
			HS:          25 + float64((ind*11)%13),
			SomeCollege: 20 + float64((ind*5)%11),
			Unemp:       3 + float64((ind*3)%7)/2,
		}

		c.Bachelors = 100 - c.NoHS - c.HS - c.SomeCollege
		urban := 0.0
		if c.Settlement != "Rural" {
			urban = 1
		}

		c.Income = 70000 - 600*c.NoHS - 200*c.HS + 100*c.SomeCollege + 4000*urban + 1500*math.Sin(1.7*float64(ind))
		out[ind] = c
	}

	return out
}

// Table returns counties as a cleaned analysis table.
func Table(counties []County) *d.DF {
	n := len(counties)
	noHS, hs, some, bach := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	inc, unemp := make([]float64, n), make([]float64, n)
	pop := make([]string, n)
	for ind, c := range counties {
		noHS[ind], hs[ind], some[ind], bach[ind] = c.NoHS, c.HS, c.SomeCollege, c.Bachelors
		inc[ind], unemp[ind] = c.Income, c.Unemp
		pop[ind] = clean.Urban
		if c.Settlement == "Rural" {
			pop[ind] = clean.Rural
		}
	}

	cols := []*d.Col{
		mustCol(noHS, clean.NoHS),
		mustCol(hs, clean.HS),
		mustCol(some, clean.SomeCollege),
		mustCol(bach, clean.Bachelors),
	}

	pt, e := d.NewCol(pop, d.DTstring, d.ColName(clean.PopType), d.ColLevels(clean.Rural, clean.Urban))
	if e != nil {
		panic(e)
	}

	cols = append(cols, pt, mustCol(inc, clean.Income), mustCol(unemp, clean.Unemp))

	df, e := d.NewDF(cols...)
	if e != nil {
		panic(e)
	}

	return df
}

// WriteSources writes counties as the two raw CSV sources in dir and returns their paths.
// Income is written with thousands separators as in the USDA files.
func WriteSources(dir string, counties []County) (eduPath, unempPath string, err error) {
	edu := [][]string{{clean.EduKey, "State", "Area name", clean.LabelPopType,
		clean.LabelNoHS, clean.LabelHS, clean.LabelSomeCollege, clean.LabelBachelors}}
	unemp := [][]string{{clean.UnempKey, "State", clean.LabelIncome, clean.LabelUnemp}}

	for _, c := range counties {
		edu = append(edu, []string{c.FIPS, c.State, "County " + c.FIPS, c.Settlement,
			ff(c.NoHS), ff(c.HS), ff(c.SomeCollege), ff(c.Bachelors)})
		unemp = append(unemp, []string{c.FIPS, c.State, thousands(c.Income), ff(c.Unemp)})
	}

	eduPath = filepath.Join(dir, educationFile)
	unempPath = filepath.Join(dir, unemploymentFile)
	if err = writeCSV(eduPath, edu); err != nil {
		return "", "", err
	}

	if err = writeCSV(unempPath, unemp); err != nil {
		return "", "", err
	}

	return eduPath, unempPath, nil
}

func writeCSV(fileName string, records [][]string) error {
	f, e := os.Create(fileName)
	if e != nil {
		return e
	}

	w := csv.NewWriter(f)
	if e = w.WriteAll(records); e != nil {
		_ = f.Close()
		return e
	}

	return f.Close()
}

func mustCol(x []float64, name string) *d.Col {
	c, e := d.NewCol(x, d.DTfloat, d.ColName(name))
	if e != nil {
		panic(e)
	}

	return c
}

func ff(x float64) string {
	return fmt.Sprintf("%.1f", x)
}

// thousands formats x with two decimals and comma separators, e.g. 55,000.00.
func thousands(x float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", x)
}
