package df

import "errors"

// Errors returned by the pipeline stages. Stages wrap these with detail, test with errors.Is.
var (
	// ErrSourceRead: a source is missing, unreadable or empty.
	ErrSourceRead = errors.New("source read error")
	// ErrJoin: a join key column is missing.
	ErrJoin = errors.New("join error")
	// ErrSchema: a column the cleaner needs is missing.
	ErrSchema = errors.New("schema error")
	// ErrParse: a numeric field holds a non-numeric value.
	ErrParse = errors.New("parse error")
	// ErrValidation: the cleaned table breaks an invariant of the analysis schema.
	ErrValidation = errors.New("validation error")
	// ErrFormula: the model formula is malformed or names an absent column.
	ErrFormula = errors.New("formula error")
	// ErrDomain: log of a non-positive response.
	ErrDomain = errors.New("domain error")
	// ErrRankDeficiency: the design matrix is not of full column rank.
	ErrRankDeficiency = errors.New("rank deficiency error")
	// ErrUnknownTerm: a diagnostic was requested for a term that is not in the fit.
	ErrUnknownTerm = errors.New("unknown term error")
	// ErrUnknownStage: the report has no such step.
	ErrUnknownStage = errors.New("unknown stage error")
)
