package ols

import (
	"fmt"
	"strings"

	d "github.com/invertedv/incomereg"
)

// Transforms of the response.
const (
	Identity = ""
	Log      = "log"
)

// Formula is a parsed model formula "response ~ term + term". The response may be wrapped in
// log(). An intercept is always included.
type Formula struct {
	Response  string
	Transform string
	Terms     []string
}

// ParseFormula parses a formula such as "log(median_income) ~ pop_type + hs_diploma".
func ParseFormula(formula string) (*Formula, error) {
	parts := strings.Split(formula, "~")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q must have exactly one ~", d.ErrFormula, formula)
	}

	f := &Formula{}
	lhs := strings.TrimSpace(parts[0])
	if strings.HasPrefix(lhs, Log+"(") && strings.HasSuffix(lhs, ")") {
		f.Transform = Log
		lhs = strings.TrimSpace(lhs[len(Log)+1 : len(lhs)-1])
	}

	if !ident(lhs) {
		return nil, fmt.Errorf("%w: bad response %q in %q", d.ErrFormula, parts[0], formula)
	}

	f.Response = lhs

	for _, t := range strings.Split(parts[1], "+") {
		t = strings.TrimSpace(t)
		if !ident(t) {
			return nil, fmt.Errorf("%w: bad term %q in %q", d.ErrFormula, t, formula)
		}

		if t == f.Response {
			return nil, fmt.Errorf("%w: response %s is also a term", d.ErrFormula, t)
		}

		for _, prior := range f.Terms {
			if prior == t {
				return nil, fmt.Errorf("%w: term %s repeated", d.ErrFormula, t)
			}
		}

		f.Terms = append(f.Terms, t)
	}

	return f, nil
}

// ResponseLabel is the response as written, e.g. "log(median_income)".
func (f *Formula) ResponseLabel() string {
	if f.Transform == Log {
		return Log + "(" + f.Response + ")"
	}

	return f.Response
}

func (f *Formula) String() string {
	return f.ResponseLabel() + " ~ " + strings.Join(f.Terms, " + ")
}

func ident(s string) bool {
	if s == "" {
		return false
	}

	for ind, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && ind > 0:
		default:
			return false
		}
	}

	return true
}
