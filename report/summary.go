package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/invertedv/incomereg/ols"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReferenceIncome is the median income the dollar effects are quoted at.
const ReferenceIncome = 60000.0

// DollarEffect converts a log-scale coefficient to a dollar change at ReferenceIncome.
func DollarEffect(coef float64) float64 {
	return ReferenceIncome * (math.Exp(coef) - 1)
}

// Summary renders the fit statistics and the coefficient table of m.
func Summary(m *ols.Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dep. Variable: %s\n", m.Formula.ResponseLabel())
	fmt.Fprintf(&b, "No. Observations: %d   Df Model: %d   Df Residuals: %d\n", m.N, m.DFModel, m.DFResid)
	fmt.Fprintf(&b, "R-squared: %.3f   Adj. R-squared: %.3f\n", m.RSquared, m.AdjRSquared)
	fmt.Fprintf(&b, "F-statistic: %.4g   Prob (F-statistic): %.3g   Residual std. error: %.4g\n\n",
		m.FStat, m.FPValue, m.Sigma)

	tbl := tablewriter.NewWriter(&b)
	tbl.SetHeader([]string{"term", "coef", "std err", "t", "P>|t|"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	tbl.SetAutoFormatHeaders(false)
	for _, c := range m.Coefficients {
		if c.Aliased {
			tbl.Append([]string{c.Term, "aliased", "", "", ""})
			continue
		}

		tbl.Append([]string{c.Term, fmt.Sprintf("%.4f", c.Estimate), fmt.Sprintf("%.4f", c.StdErr),
			fmt.Sprintf("%.3f", c.T), fmt.Sprintf("%.3f", c.P)})
	}

	tbl.Render()

	if aliased := m.Aliased(); len(aliased) > 0 {
		fmt.Fprintf(&b, "Not estimable (constant): %s\n", strings.Join(aliased, ", "))
	}

	return b.String()
}

// Interpretation is the narrative for m: the overall F test, then the effect of each slope. For a
// log response the effect is also given in dollars at ReferenceIncome.
func Interpretation(m *ols.Model) string {
	pr := message.NewPrinter(language.English)

	var b strings.Builder
	verdict := "education level and/or population type (urban or rural) appear to have an impact on"
	if m.FPValue >= 0.05 {
		verdict = "there is no evidence that education level or population type (urban or rural) affect"
	}

	fmt.Fprintf(&b, "With an F-statistic of %.1f (p = %.3g), %s expected median income.\n",
		m.FStat, m.FPValue, verdict)

	isLog := m.Formula.Transform == ols.Log
	for _, c := range m.Coefficients {
		if c.Term == ols.Intercept {
			continue
		}

		what := describe(c.Term)
		if c.Aliased {
			fmt.Fprintf(&b, "%s is not estimable: it does not vary in the data.\n", what)
			continue
		}

		fmt.Fprintf(&b, "%s will result in a %.4f unit %s in %s while holding the other terms fixed.",
			what, math.Abs(c.Estimate), direction(c.Estimate), m.Formula.ResponseLabel())
		if isLog {
			dollars := DollarEffect(c.Estimate)
			more := "more"
			if dollars < 0 {
				more = "less"
			}

			fmt.Fprint(&b, pr.Sprintf(" Where the median income is $%.0f, that is about $%.2f %s.",
				ReferenceIncome, math.Abs(dollars), more))
		}

		fmt.Fprintln(&b)
	}

	return b.String()
}

// describe phrases a design column, e.g. pop_type[T.Urban] is "pop_type Urban (vs. baseline)".
func describe(term string) string {
	if ind := strings.Index(term, "[T."); ind > 0 && strings.HasSuffix(term, "]") {
		return fmt.Sprintf("%s %s (vs. baseline)", term[:ind], term[ind+3:len(term)-1])
	}

	return "Each additional point of " + term
}

func direction(x float64) string {
	if x < 0 {
		return "decrease"
	}

	return "increase"
}
